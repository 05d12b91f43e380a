package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// GoogleAdminLoginHandler handles back-office login via Google.
// Unknown emails get a pending Admin row; only approved admins receive a
// session token.
func GoogleAdminLoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	client, err := firebaseClient(ctx)
	if err != nil {
		http.Error(w, "Auth backend unavailable", http.StatusInternalServerError)
		return
	}

	token, err := client.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
	if err != nil {
		log.Printf("❌ ID token verification failed: %v", err)
		http.Error(w, "Invalid or revoked ID token", http.StatusUnauthorized)
		return
	}

	if token.Audience != projectID {
		http.Error(w, "Invalid token audience", http.StatusUnauthorized)
		return
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	var admin models.Admin
	err = db.Where("email = ?", email).First(&admin).Error

	if err == gorm.ErrRecordNotFound {
		// First sight of this email: queue for approval
		admin = models.Admin{
			Email:    email,
			Name:     name,
			Picture:  picture,
			Approved: false,
		}
		if err := db.Create(&admin).Error; err != nil {
			http.Error(w, "Failed to register admin", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if !admin.Approved {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Admin account awaiting approval",
		})
		return
	}

	resp := map[string]interface{}{
		"message": "Admin login successful",
		"admin":   admin,
		"token":   issueJWT(email, "admin", token.UID, name, picture),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
