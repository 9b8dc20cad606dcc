package api

import (
	"time"

	"kassabon/config"
	"kassabon/database"
	"kassabon/middleware"
	"kassabon/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// stayLoggedInExpire is the token lifetime when the client asks to stay
// logged in.
const stayLoggedInExpire = 120 * time.Hour

// AuthHandler handles registration, login and profile management.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"jan"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"wachtwoord123"`
	Email    string `json:"email" binding:"omitempty,email" example:"jan@example.com"`
}

// LoginRequest accepts a username or an email address in the username field.
type LoginRequest struct {
	Username     string `json:"username" binding:"required" example:"jan"`
	Password     string `json:"password" binding:"required" example:"wachtwoord123"`
	StayLoggedIn bool   `json:"stay_logged_in"`
}

// LoginResponse is the login payload.
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register creates a new account.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "registration data"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existingUser).Error; err == nil {
		BadRequest(c, "Gebruiker bestaat al.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "Wachtwoord versleutelen mislukt.")
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Gebruiker aanmaken mislukt."))
		return
	}

	SuccessWithMessage(c, "Registratie gelukt.", user)
}

// Login authenticates a user and issues a JWT.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=LoginResponse}
// @Failure 401 {object} Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	// The username field may hold either a username or an email address.
	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		Unauthorized(c, "Gebruikersnaam of wachtwoord onjuist.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "Gebruikersnaam of wachtwoord onjuist.")
		return
	}

	expire := h.cfg.JWT.ExpireTime
	if req.StayLoggedIn {
		expire = stayLoggedInExpire
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, expire)
	if err != nil {
		InternalError(c, "Token genereren mislukt.")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: user,
	})
}

// GetProfile returns the authenticated user.
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 404 {object} Response
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Gebruiker niet gevonden.")
		return
	}

	Success(c, user)
}

// ChangePasswordRequest is the password change payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// ChangePassword updates the authenticated user's password.
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "password data"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Gebruiker niet gevonden.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		Unauthorized(c, "Huidig wachtwoord onjuist.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "Wachtwoord versleutelen mislukt.")
		return
	}

	if err := database.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Wachtwoord bijwerken mislukt."))
		return
	}

	SuccessWithMessage(c, "Wachtwoord gewijzigd.", nil)
}
