package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lapiazza/storefront_api/internal/middleware"
	"github.com/lapiazza/storefront_api/internal/service"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// AuthHandler handles customer registration, login and session lookups.
type AuthHandler struct {
	customerService *service.CustomerService
	loginLimiter    *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(customerService *service.CustomerService, loginLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{customerService: customerService, loginLimiter: loginLimiter}
}

type registerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Register creates a new customer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "firstName, email and password (min 6 chars) are required")
		return
	}

	customer, err := h.customerService.Register(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrEmailRegistered) {
			utils.Error(c, 409, "EMAIL_ALREADY_REGISTERED", "An account with that email already exists")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create account")
		return
	}

	utils.Success(c, 201, "Account created successfully", gin.H{"customer": customer})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token. Failed attempts
// are rate limited per client IP.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "email and password are required")
		return
	}

	token, err := h.customerService.Login(req.Email, req.Password)
	if err != nil {
		if !h.loginLimiter.Allow(c.ClientIP()) {
			utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	h.loginLimiter.Reset(c.ClientIP())

	utils.Success(c, 200, "Login successful", gin.H{"token": token})
}

// Me returns the customer behind the session token. Requires the JWT
// middleware to have set customer_id.
func (h *AuthHandler) Me(c *gin.Context) {
	customer, err := h.customerService.GetByID(c.GetString("customer_id"))
	if err != nil {
		utils.Error(c, 404, "CUSTOMER_NOT_FOUND", "No customer for this session")
		return
	}
	utils.Success(c, 200, "Customer retrieved successfully", gin.H{"customer": customer})
}
