package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"veloura/config"
	"veloura/middleware"
	"veloura/models"
	"veloura/utils"
	"veloura/views"
)

// UserController handles registration, login, logout and the profile page
type UserController struct {
	Users        *mongo.Collection
	Products     *mongo.Collection
	Flash        *utils.Flash
	EmailService *utils.EmailService
	Config       *config.Config
}

// NewUserController creates a new UserController with EmailService
func NewUserController(client *mongo.Client, cfg *config.Config, flash *utils.Flash, emailService *utils.EmailService) *UserController {
	db := client.Database(cfg.DBName)
	return &UserController{
		Users:        db.Collection("users"),
		Products:     db.Collection("products"),
		Flash:        flash,
		EmailService: emailService,
		Config:       cfg,
	}
}

// RegisterForm handles GET /users/register.
func (uc *UserController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "register.html", pageData(w, r, uc.Flash, nil))
}

// LoginForm handles GET /users/login.
func (uc *UserController) LoginForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, "login.html", pageData(w, r, uc.Flash, nil))
}

func (uc *UserController) setToken(w http.ResponseWriter, user *models.User) error {
	token, err := utils.GenerateToken(user.Email, user.ID, []byte(uc.Config.JWTKey))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{Name: "token", Value: token, Path: "/", HttpOnly: true})
	return nil
}

// redirectByRole sends owners to the dashboard, everyone else home.
func (uc *UserController) redirectByRole(w http.ResponseWriter, r *http.Request, user *models.User, ownerMsg, userMsg string) {
	if user.IsOwner() {
		uc.Flash.Success(w, r, ownerMsg)
		http.Redirect(w, r, "/owners/dashboard", http.StatusFound)
		return
	}
	uc.Flash.Success(w, r, userMsg)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Register handles POST /users/register.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uc.Flash.Error(w, r, "Something went wrong during registration.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}
	email := r.PostFormValue("email")
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	role := r.PostFormValue("role")

	if email == "" || username == "" || password == "" {
		uc.Flash.Error(w, r, "Email, username and password are required.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}
	if role == "" {
		role = models.RoleUser
	}
	// Owner accounts can only be self-registered in development mode.
	if role == models.RoleOwner && uc.Config.Production() {
		uc.Flash.Error(w, r, "Owner account creation is restricted")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	count, err := uc.Users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		zap.S().Errorf("registration: %v", err)
		uc.Flash.Error(w, r, "Something went wrong during registration.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}
	if count > 0 {
		uc.Flash.Error(w, r, "User already registered.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.Flash.Error(w, r, "Error in registration.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Cart:     []models.CartItem{},
		Wishlist: []primitive.ObjectID{},
		Orders:   []interface{}{},
	}
	result, err := uc.Users.InsertOne(ctx, user)
	if err != nil {
		zap.S().Errorf("creating user: %v", err)
		uc.Flash.Error(w, r, "Error creating user account.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	if err := uc.setToken(w, &user); err != nil {
		zap.S().Errorf("signing token: %v", err)
		uc.Flash.Error(w, r, "Error creating user account.")
		http.Redirect(w, r, "/users/register", http.StatusFound)
		return
	}

	// Fire and forget: the response never waits on email delivery.
	uc.EmailService.SendWelcomeEmailAsync(email, username)

	uc.redirectByRole(w, r, &user,
		"Account created successfully! Welcome to Veloura Admin! Check your email for a welcome message.",
		"Welcome to Veloura! Check your email for a welcome message.")
}

// Login handles POST /users/login.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uc.Flash.Error(w, r, "Email or Password incorrect")
		http.Redirect(w, r, "/users/login", http.StatusFound)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		uc.Flash.Error(w, r, "Email or Password incorrect")
		http.Redirect(w, r, "/users/login", http.StatusFound)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		uc.Flash.Error(w, r, "Email or Password incorrect")
		http.Redirect(w, r, "/users/login", http.StatusFound)
		return
	}

	if err := uc.setToken(w, &user); err != nil {
		zap.S().Errorf("signing token: %v", err)
		uc.Flash.Error(w, r, "Something went wrong")
		http.Redirect(w, r, "/users/login", http.StatusFound)
		return
	}

	uc.redirectByRole(w, r, &user, "Welcome back to Veloura Admin!", "Welcome back to Veloura!")
}

// Logout handles GET /users/logout: clearing the cookie logs the user out.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

// Profile handles GET /user/profile with the cart and wishlist resolved.
func (uc *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)
	data := pageData(w, r, uc.Flash, user)

	ids := make([]primitive.ObjectID, 0, len(user.Cart)+len(user.Wishlist))
	for _, item := range user.Cart {
		ids = append(ids, item.Product)
	}
	ids = append(ids, user.Wishlist...)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	byID, err := productsByID(ctx, uc.Products, ids)
	if err != nil {
		zap.S().Errorf("profile: %v", err)
		uc.Flash.Error(w, r, "Error loading profile.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var cartProducts, wishlistProducts []models.Product
	for _, item := range user.Cart {
		if p, found := byID[item.Product]; found {
			cartProducts = append(cartProducts, p)
		}
	}
	for _, id := range user.Wishlist {
		if p, found := byID[id]; found {
			wishlistProducts = append(wishlistProducts, p)
		}
	}

	data["CartProducts"] = cartProducts
	data["WishlistProducts"] = wishlistProducts
	views.Render(w, "user-profile.html", data)
}
