package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapiazza/storefront_api/internal/models"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// CustomerService manages the in-process customer registry and session
// tokens. Accounts live for the process lifetime; there is no external
// identity provider behind this boundary.
type CustomerService struct {
	mu      sync.Mutex
	byID    map[string]*models.Customer
	byEmail map[string]*models.Customer
}

// NewCustomerService constructs the registry, seeded with the demo account.
func NewCustomerService() *CustomerService {
	s := &CustomerService{
		byID:    make(map[string]*models.Customer),
		byEmail: make(map[string]*models.Customer),
	}
	if _, err := s.Register("Pizzero", "Expert", "alumno@lapiazza.com", "lapiazza"); err != nil {
		log.Error().Err(err).Msg("Failed to seed demo customer")
	}
	return s
}

// Register creates a new customer account. The email is the uniqueness key,
// compared case-insensitively.
func (s *CustomerService) Register(firstName, lastName, email, password string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, utils.ErrEmailRegistered
	}

	customer := &models.Customer{
		ID:               uuid.New().String(),
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		AcceptsMarketing: true,
		PasswordHash:     string(hash),
	}
	s.byID[customer.ID] = customer
	s.byEmail[email] = customer

	log.Info().Str("email", email).Msg("Customer registered")
	return customer, nil
}

// Login verifies the credentials and issues a session token.
func (s *CustomerService) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	customer, ok := s.byEmail[email]
	s.mu.Unlock()
	if !ok {
		return "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(customer.ID, customer.Email)
	if err != nil {
		return "", err
	}

	log.Info().Str("email", email).Msg("Login successful")
	return token, nil
}

// GetByToken resolves a session token back to its customer.
func (s *CustomerService) GetByToken(token string) (*models.Customer, error) {
	claims, err := utils.ValidateJWT(token)
	if err != nil {
		return nil, err
	}
	return s.GetByID(claims.CustomerID)
}

// GetByID returns a customer by identifier.
func (s *CustomerService) GetByID(id string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byID[id]
	if !ok {
		return nil, utils.ErrCustomerNotFound
	}
	return customer, nil
}
