package auth

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// GoogleUserLoginHandler verifies a Firebase ID token, upserts the user row
// (first login also creates the user's cart and wishlist), merges any guest
// cart into the user cart, and returns a session JWT.
func GoogleUserLoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var req struct {
		IDToken string `json:"idToken"`
		GuestID string `json:"guest_id"`
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
		http.Error(w, "Invalid Firebase ID token", http.StatusUnauthorized)
		return
	}

	if token.Audience != projectID {
		http.Error(w, "Invalid token audience", http.StatusUnauthorized)
		return
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	uid := token.UID

	// Fetch or create the user
	var user models.User
	err = db.Preload("Cart.Items").Preload("Wishlist.Items").Where("id = ?", uid).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		user = models.User{
			ID:       uid,
			Email:    email,
			Name:     name,
			Picture:  picture,
			Provider: "google",
			Cart:     models.Cart{UserID: uid},
			Wishlist: models.Wishlist{UserID: uid},
		}

		if err := db.Create(&user).Error; err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

	} else if err == nil {
		// Existing user: refresh the profile fields the provider owns
		db.Model(&user).Updates(models.User{
			Name:    name,
			Picture: picture,
		})
	} else {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// Merge guest cart into the user cart
	mergeStatus := "no-guest-cart"

	if req.GuestID != "" {
		merged, err := mergeGuestCartIntoUserCart(db, req.GuestID, user.ID)
		if err != nil {
			mergeStatus = "merge-failed"
		} else if merged {
			mergeStatus = "merged-success"
		} else {
			mergeStatus = "guest-cart-empty"
		}
	}

	resp := map[string]interface{}{
		"message":      "Login successful",
		"merge_status": mergeStatus,
		"user":         user,
		"token":        issueJWT(email, "user", uid, name, picture),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// mergeGuestCartIntoUserCart moves every guest cart line into the user's
// cart inside one transaction: quantities add when the product is already
// present, otherwise the snapshot row is copied over. The guest cart is
// deleted on success. Returns false when there was nothing to merge.
func mergeGuestCartIntoUserCart(db *gorm.DB, guestID, userID string) (bool, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	var guestCart models.GuestCart
	if err := tx.Preload("Items").
		Where("guest_id = ?", guestID).
		First(&guestCart).Error; err != nil {

		tx.Rollback()
		return false, nil // nothing to merge
	}

	// Load or create user cart
	var userCart models.Cart
	err := tx.Where("user_id = ?", userID).First(&userCart).Error

	if err == gorm.ErrRecordNotFound {
		userCart = models.Cart{UserID: userID}
		if err := tx.Create(&userCart).Error; err != nil {
			tx.Rollback()
			return false, err
		}
	} else if err != nil {
		tx.Rollback()
		return false, err
	}

	for _, guestItem := range guestCart.Items {
		var userItem models.CartItem

		lookupErr := tx.Where(
			"cart_id = ? AND product_id = ?",
			userCart.CartID,
			guestItem.ProductID,
		).First(&userItem).Error

		if lookupErr == nil {
			userItem.Quantity += guestItem.Quantity
			userItem.AddedAt = time.Now()

			if err := tx.Save(&userItem).Error; err != nil {
				tx.Rollback()
				return false, err
			}

		} else if lookupErr == gorm.ErrRecordNotFound {
			newItem := models.CartItem{
				CartID:           userCart.CartID,
				ProductID:        guestItem.ProductID,
				ProductName:      guestItem.ProductName,
				ProductImage:     guestItem.ProductImage,
				ProductStock:     guestItem.ProductStock,
				ProductBasePrice: guestItem.ProductBasePrice,
				ProductPrice:     guestItem.ProductPrice,
				WeightGrams:      guestItem.WeightGrams,
				Quantity:         guestItem.Quantity,
				AddedAt:          time.Now(),
			}

			if err := tx.Create(&newItem).Error; err != nil {
				tx.Rollback()
				return false, err
			}

		} else {
			tx.Rollback()
			return false, lookupErr
		}
	}

	// Guest cart is spent
	if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Delete(&guestCart).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return false, err
	}

	return true, nil
}

// issueJWT generates a session token for a user
func issueJWT(email, role, userID, name, picture string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"name":    name,
		"picture": picture,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}
