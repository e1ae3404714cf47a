package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/official-fedorenko/ElectricalShop/internal/database"
	"github.com/official-fedorenko/ElectricalShop/internal/models"
)

// 🟢 GET /api/admin/users
func ListUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT user_id, email, name, role, created_at FROM users`).
		WithContext(c.Request.Context()).Iter()

	var users []models.User
	var (
		userID    gocql.UUID
		email     string
		name      string
		role      string
		createdAt time.Time
	)
	for iter.Scan(&userID, &email, &name, &role, &createdAt) {
		created := createdAt
		users = append(users, models.User{
			ID:        userID.String(),
			Email:     email,
			Name:      name,
			Role:      role,
			CreatedAt: &created,
		})
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// 🟢 PUT /api/admin/users/:id/role
func UpdateUserRole(c *gin.Context) {
	uid, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=customer admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle invalide (customer ou admin)"})
		return
	}

	if err := database.GetPreparedUpdateUserRole().Bind(input.Role, gocql.UUID(uid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rôle mis à jour"})
}
