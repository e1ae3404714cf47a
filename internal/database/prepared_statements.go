package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour le chemin chaud de l'authentification
	stmtGetUserIDByEmail  *gocql.Query
	stmtGetUserByID       *gocql.Query
	stmtInsertUser        *gocql.Query
	stmtInsertUserByEmail *gocql.Query
	stmtUpdateUserRole    *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Récupérer user_id par email (table inversée)
		stmtGetUserIDByEmail = session.Query("SELECT user_id FROM users_by_email WHERE email = ?")

		// Récupérer un utilisateur par ID
		stmtGetUserByID = session.Query(`SELECT email, password, name, role, created_at FROM users WHERE user_id = ?`)

		// Insérer un utilisateur
		stmtInsertUser = session.Query(`INSERT INTO users (user_id, email, password, name, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`)

		// Insérer dans users_by_email
		stmtInsertUserByEmail = session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)")

		// Changer le rôle (back-office admin)
		stmtUpdateUserRole = session.Query("UPDATE users SET role = ? WHERE user_id = ?")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserIDByEmail() *gocql.Query {
	return stmtGetUserIDByEmail
}

func GetPreparedGetUserByID() *gocql.Query {
	return stmtGetUserByID
}

func GetPreparedInsertUser() *gocql.Query {
	return stmtInsertUser
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return stmtInsertUserByEmail
}

func GetPreparedUpdateUserRole() *gocql.Query {
	return stmtUpdateUserRole
}
