package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"veloura/utils"
)

// EmailController exposes the email-testing surface
type EmailController struct {
	EmailService *utils.EmailService
}

// NewEmailController creates a new EmailController
func NewEmailController(emailService *utils.EmailService) *EmailController {
	return &EmailController{EmailService: emailService}
}

// TestConnection handles GET /email/test-connection.
func (ec *EmailController) TestConnection(w http.ResponseWriter, r *http.Request) {
	err := ec.EmailService.VerifyConnection()
	if err != nil {
		zap.S().Errorf("email connection test failed: %v", err)
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"connected": err == nil,
		"message":   connectionMessage(err == nil),
	})
}

func connectionMessage(connected bool) string {
	if connected {
		return "Email server is ready!"
	}
	return "Email server connection failed!"
}

// TestSend handles POST /email/test-send.
func (ec *EmailController) TestSend(w http.ResponseWriter, r *http.Request) {
	var body struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Invalid input"})
		return
	}
	if body.To == "" || body.Subject == "" || body.Message == "" {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Missing required fields"})
		return
	}

	html := "<p>" + strings.ReplaceAll(body.Message, "\n", "<br>") + "</p>"
	if err := ec.EmailService.Send(body.To, body.Subject, body.Message, html); err != nil {
		zap.S().Errorf("test email failed: %v", err)
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
