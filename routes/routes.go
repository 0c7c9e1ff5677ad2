package routes

import (
	"github.com/gorilla/mux"

	"veloura/controllers"
	"veloura/middleware"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Shop     *controllers.ShopController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	User     *controllers.UserController
	Owner    *controllers.OwnerController
	Product  *controllers.ProductController
	Email    *controllers.EmailController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, auth *middleware.Auth, c Controllers) {
	// Public storefront routes
	router.HandleFunc("/", c.Shop.Home).Methods("GET")
	router.HandleFunc("/contact-us", c.Shop.InfoPage("contact-us.html")).Methods("GET")
	router.HandleFunc("/size-guide", c.Shop.InfoPage("size-guide.html")).Methods("GET")
	router.HandleFunc("/care-instructions", c.Shop.InfoPage("care-instructions.html")).Methods("GET")
	router.HandleFunc("/warranty", c.Shop.InfoPage("warranty.html")).Methods("GET")
	router.HandleFunc("/products/image/{id}", c.Shop.Image).Methods("GET")

	// Routes requiring a logged-in user
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(auth.IsLoggedIn)
	protected.HandleFunc("/shop", c.Shop.Shop).Methods("GET")
	protected.HandleFunc("/user/profile", c.User.Profile).Methods("GET")
	protected.HandleFunc("/cart", c.Cart.ViewCart).Methods("GET")
	protected.HandleFunc("/cart/update", c.Cart.UpdateCart).Methods("POST")
	protected.HandleFunc("/cart/remove/{id}", c.Cart.RemoveFromCart).Methods("GET")
	protected.HandleFunc("/addtocart/{id}", c.Cart.AddToCart).Methods("GET")
	protected.HandleFunc("/wishlist", c.Wishlist.View).Methods("GET")
	protected.HandleFunc("/wishlist/clear-all", c.Wishlist.ClearAll).Methods("POST")
	protected.HandleFunc("/addtowishlist/{id}", c.Wishlist.Toggle).Methods("GET")

	// Account routes
	users := router.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", c.User.RegisterForm).Methods("GET")
	users.HandleFunc("/register", c.User.Register).Methods("POST")
	users.HandleFunc("/login", c.User.LoginForm).Methods("GET")
	users.HandleFunc("/login", c.User.Login).Methods("POST")
	users.HandleFunc("/logout", c.User.Logout).Methods("GET")

	// Owner admin panel
	owners := router.PathPrefix("/owners").Subrouter()
	owners.Use(auth.IsOwner)
	owners.HandleFunc("/dashboard", c.Owner.Dashboard).Methods("GET")
	owners.HandleFunc("/create-product", c.Owner.CreateProductPage).Methods("GET")
	owners.HandleFunc("/manage-products", c.Owner.ManageProducts).Methods("GET")
	owners.HandleFunc("/edit-product/{id}", c.Owner.EditProductPage).Methods("GET")
	owners.HandleFunc("/delete-product/{id}", c.Owner.DeleteProduct).Methods("GET")
	owners.HandleFunc("/admin", c.Owner.LegacyAdmin).Methods("GET")

	// Product management (owner only)
	products := router.PathPrefix("/products").Subrouter()
	products.Use(auth.IsOwner)
	products.HandleFunc("/create", c.Product.Create).Methods("POST")
	products.HandleFunc("/update/{id}", c.Product.Update).Methods("POST")

	// Email testing surface
	email := router.PathPrefix("/email").Subrouter()
	email.HandleFunc("/test-connection", c.Email.TestConnection).Methods("GET")
	email.HandleFunc("/test-send", c.Email.TestSend).Methods("POST")
}
