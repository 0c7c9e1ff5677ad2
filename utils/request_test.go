package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAjax(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   bool
	}{
		{"plain page request", map[string]string{"Accept": "text/html"}, false},
		{"no headers", nil, false},
		{"x-requested-with", map[string]string{"X-Requested-With": "XMLHttpRequest"}, true},
		{"x-requested-with lowercase", map[string]string{"X-Requested-With": "xmlhttprequest"}, true},
		{"accept json", map[string]string{"Accept": "application/json"}, true},
		{"accept mixed with json", map[string]string{"Accept": "text/html, application/json"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/addtocart/abc", nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, IsAjax(r))
		})
	}
}
