package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/official-fedorenko/ElectricalShop/internal/database"
	"github.com/official-fedorenko/ElectricalShop/internal/middleware"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
	"github.com/official-fedorenko/ElectricalShop/internal/utils"
)

// ================== AUTH LOCALE ==================

// 🟢 POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Vérifier si l'email existe déjà
	var existingID gocql.UUID
	err := database.GetPreparedGetUserIDByEmail().Bind(input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}
	if !errors.Is(err, gocql.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	if err := database.GetPreparedInsertUser().
		Bind(userID, input.Email, hashedPassword, input.Name, "customer", now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(input.Email, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:        userID.String(),
		Email:     input.Email,
		Name:      input.Name,
		Role:      "customer",
		CreatedAt: &now,
	}

	// Mail de bienvenue, sans bloquer la réponse
	go func() {
		if err := utils.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Println("⚠️ Échec envoi mail de bienvenue:", err)
		}
	}()

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// 🟢 POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	var userID gocql.UUID
	err := database.GetPreparedGetUserIDByEmail().Bind(input.Email).Scan(&userID)
	if err != nil {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user, err := fetchUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateur"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ResetLoginAttempts(input.Email)

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// 🟢 GET /api/auth/me
func Me(c *gin.Context) {
	uid, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id invalide"})
		return
	}

	user, err := fetchUser(gocql.UUID(uid))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func fetchUser(userID gocql.UUID) (*models.User, error) {
	var (
		email, password, name, role string
		createdAt                   time.Time
	)
	if err := database.GetPreparedGetUserByID().Bind(userID).
		Scan(&email, &password, &name, &role, &createdAt); err != nil {
		return nil, err
	}

	return &models.User{
		ID:        userID.String(),
		Email:     email,
		Password:  password,
		Name:      name,
		Role:      role,
		CreatedAt: &createdAt,
	}, nil
}
