package api

import (
	"time"

	"kassabon/config"
	"kassabon/database"
	"kassabon/models"
	"kassabon/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// resetCodeTTL is how long a reset code stays valid.
const resetCodeTTL = 30 * time.Minute

// PasswordResetHandler implements the forgot-password flow: request a code
// by mail, verify it, then set a new password.
type PasswordResetHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewPasswordResetHandler creates the password reset handler.
func NewPasswordResetHandler(cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

// RequestResetRequest asks for a reset code by email.
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyResetCodeRequest checks a code without consuming it.
type VerifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// ResetPasswordRequest sets a new password using a valid code.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50"`
}

// RequestPasswordReset mails a 6-digit reset code. To avoid leaking which
// addresses exist, unknown emails get the same success response.
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "email address"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/auth/password/request-reset [post]
func (h *PasswordResetHandler) RequestPasswordReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Voer een geldig e-mailadres in.")
		return
	}

	neutral := "Als dit e-mailadres bekend is, ontvang je een e-mail met een resetcode."

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		SuccessWithMessage(c, neutral, nil)
		return
	}

	// One active code at a time.
	var existing models.PasswordReset
	if err := database.DB.Where("user_id = ? AND used = ? AND expires_at > ?", user.ID, false, time.Now()).First(&existing).Error; err == nil {
		SuccessWithMessage(c, "Er is al een resetcode verstuurd. Controleer je inbox (en spam).", nil)
		return
	}

	code, err := models.GenerateResetCode()
	if err != nil {
		InternalError(c, "Resetcode genereren mislukt.")
		return
	}

	passwordReset := models.PasswordReset{
		UserID:    user.ID,
		Token:     code,
		Email:     req.Email,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}

	if err := database.DB.Create(&passwordReset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Resetcode opslaan mislukt."))
		return
	}

	if err := h.emailService.SendPasswordResetEmail(req.Email, user.Username, code); err != nil {
		// Without the mail the code is useless, remove it again.
		database.DB.Delete(&passwordReset)
		InternalError(c, SafeErrorMessage(err, "E-mail versturen mislukt."))
		return
	}

	SuccessWithMessage(c, neutral, nil)
}

// VerifyResetCode checks whether a code is still usable.
// @Summary Verify a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyResetCodeRequest true "email and code"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/auth/password/verify-code [post]
func (h *PasswordResetHandler) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer.")
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "Ongeldige resetcode.")
		return
	}

	if !passwordReset.IsValid() {
		message := "Resetcode is niet meer geldig."
		if passwordReset.Used {
			message = "Deze resetcode is al gebruikt."
		} else if passwordReset.IsExpired() {
			message = "Resetcode is verlopen. Vraag een nieuwe aan."
		}
		BadRequest(c, message)
		return
	}

	SuccessWithMessage(c, "Resetcode is geldig.", nil)
}

// ResetPassword consumes a valid code and sets the new password.
// @Summary Reset password with a code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "email, code and new password"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/v1/auth/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Ongeldige invoer.")
		return
	}

	var passwordReset models.PasswordReset
	if err := database.DB.Where("email = ? AND token = ?", req.Email, req.Code).First(&passwordReset).Error; err != nil {
		BadRequest(c, "Ongeldige resetcode.")
		return
	}

	if !passwordReset.IsValid() {
		BadRequest(c, "Resetcode is verlopen of al gebruikt.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, "Wachtwoord versleutelen mislukt.")
		return
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", passwordReset.UserID).Update("password", string(hashedPassword)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "Wachtwoord bijwerken mislukt."))
		return
	}

	// Invalidate every outstanding code for this user, this one included.
	database.DB.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ?", passwordReset.UserID, false).
		Update("used", true)

	SuccessWithMessage(c, "Wachtwoord gereset. Log in met je nieuwe wachtwoord.", nil)
}
