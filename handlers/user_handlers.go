package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/config"
	"storefront/jwt"
	"storefront/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= 8 && len(password) <= 50
}

// issueToken signs a JWT and records it so logout can revoke it.
func issueToken(jwtManager *jwt.Manager, db *gorm.DB, userID uint, role string, ttl time.Duration) (string, error) {
	expirationTime := time.Now().Add(ttl)
	token, err := jwtManager.GenerateToken(userID, role, expirationTime.Unix())
	if err != nil {
		return "", err
	}

	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: expirationTime,
		UserID:         userID,
		Role:           role,
	}
	if err := db.Create(&loginToken).Error; err != nil {
		return "", err
	}

	return token, nil
}

// SignupHandler registers a new user account.
func SignupHandler(c *gin.Context, db *gorm.DB) {
	var signupReq struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&signupReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	if !ValidateEmail(signupReq.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid email address",
		})
		return
	}
	if !ValidatePassword(signupReq.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "password must be between 8 and 50 characters",
		})
		return
	}

	var existing models.User
	err := db.First(&existing, "email = ?", signupReq.Email).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("signup email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupReq.Password), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})
		return
	}

	newUser := models.User{
		Name:     signupReq.Name,
		Email:    signupReq.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := db.Create(&newUser).Error; err != nil {
		zap.L().Error("user creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})
		return
	}

	zap.L().Info("user registered", zap.Uint("userID", newUser.ID))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
	})
}

// LoginHandler authenticates a user and issues a bearer token.
func LoginHandler(c *gin.Context, cfg *config.Config, jwtManager *jwt.Manager, db *gorm.DB) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", loginReq.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("login failed: user not found", zap.String("email", loginReq.Email))
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid credentials",
			})
			return
		}
		zap.L().Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})
		return
	}

	if user.Blocked {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Your account has been blocked",
		})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password))
	if err != nil {
		zap.L().Warn("login failed: incorrect password", zap.Uint("userID", user.ID))
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	token, err := issueToken(jwtManager, db, user.ID, user.Role, cfg.JWT.TTL())
	if err != nil {
		zap.L().Error("token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Login failed",
		})
		return
	}

	zap.L().Info("user logged in", zap.Uint("userID", user.ID))
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// AdminLoginHandler authenticates against the configured admin credentials.
func AdminLoginHandler(c *gin.Context, cfg *config.Config, jwtManager *jwt.Manager, db *gorm.DB) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	if cfg.Admin.Password == "" ||
		loginReq.Email != cfg.Admin.Email ||
		loginReq.Password != cfg.Admin.Password {
		zap.L().Warn("admin login failed", zap.String("email", loginReq.Email))
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	token, err := issueToken(jwtManager, db, 0, models.RoleAdmin, cfg.JWT.TTL())
	if err != nil {
		zap.L().Error("admin token issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Something went wrong",
		})
		return
	}

	zap.L().Info("admin logged in")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}

// LogoutHandler revokes the caller's token.
func LogoutHandler(c *gin.Context, db *gorm.DB) {
	token, exists := c.Get("Token")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "no token to revoke",
		})
		return
	}

	result := db.Delete(&models.LoginToken{}, "token = ?", token)
	if result.Error != nil {
		zap.L().Error("logout failed", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "already logged out",
		})
		return
	}

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out",
	})
}

// ChangePasswordHandler replaces a user's password after verifying the old one.
func ChangePasswordHandler(c *gin.Context, db *gorm.DB) {
	var changeReq struct {
		Email           string `json:"email" binding:"required"`
		OldPassword     string `json:"oldPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&changeReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	var user models.User
	err := db.First(&user, "email = ?", changeReq.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}
		zap.L().Error("change password lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(changeReq.OldPassword))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Old password is incorrect",
		})
		return
	}

	if changeReq.OldPassword == changeReq.NewPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "New password cannot be the same as old password",
		})
		return
	}
	if changeReq.NewPassword != changeReq.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "New password and confirm password do not match",
		})
		return
	}
	if !ValidatePassword(changeReq.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "password must be between 8 and 50 characters",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(changeReq.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	user.Password = string(hashedPassword)
	if err := db.Save(&user).Error; err != nil {
		zap.L().Error("password update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error updating password",
		})
		return
	}

	zap.L().Info("password changed", zap.Uint("userID", user.ID))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

// UsersHandler returns the authenticated caller's identity.
func UsersHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "authentication required",
		})
		return
	}

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}
		zap.L().Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  user.ID,
		"email":   user.Email,
		"name":    user.Name,
	})
}
