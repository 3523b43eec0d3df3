package controllers

import (
	"net/http"
	"time"

	"github.com/circusplayer/qjwc/database"
	"github.com/circusplayer/qjwc/dto"
	"github.com/circusplayer/qjwc/models"
	"github.com/circusplayer/qjwc/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Emails are stored lowercased, so the lookup must match.
		email := utils.NormalizeEmail(body.Email)

		var user models.User
		usersCol := database.OpenCollection("users")
		if err := usersCol.FindOne(c.Request.Context(), bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate refresh token"})
			return
		}

		refreshTokensCol := database.OpenCollection("refresh_tokens")
		now := time.Now().UTC()
		_, err = refreshTokensCol.InsertOne(c.Request.Context(), models.RefreshToken{
			UserID:    user.ID,
			TokenHash: refreshToken,
			ExpiresAt: now.Add(utils.RefreshTTL()),
			CreatedAt: now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     "refreshToken",
			Value:    refreshToken,
			Path:     "/auth/refresh",
			MaxAge:   int(utils.RefreshTTL().Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode, // for cross-site
		})
		c.JSON(http.StatusOK, gin.H{
			"accessToken": accessToken,
		})
	}
}

func Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")
		refreshCol := database.OpenCollection("refresh_tokens")

		hash, err := c.Cookie("refreshToken")
		if err != nil || hash == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}

		var rt models.RefreshToken
		err = refreshCol.FindOne(ctx, bson.M{
			"tokenHash": hash,
			"revokedAt": bson.M{"$exists": false},
			"expiresAt": bson.M{"$gt": time.Now().UTC()},
		}).Decode(&rt)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"_id": rt.UserID}).Decode(&user); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		// Rotate refresh token
		newHash, err := utils.GenerateRefreshToken(user.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
			return
		}

		now := time.Now().UTC()

		_, err = refreshCol.UpdateByID(ctx, rt.ID, bson.M{
			"$set": bson.M{
				"revokedAt":  now,
				"replacedBy": newHash,
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke refresh token"})
			return
		}

		_, err = refreshCol.InsertOne(ctx, models.RefreshToken{
			UserID:    user.ID,
			TokenHash: newHash,
			ExpiresAt: now.Add(utils.RefreshTTL()),
			CreatedAt: now,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Email, string(user.Role), utils.AccessTTL())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     "refreshToken",
			Value:    newHash,
			Path:     "/auth/refresh",
			MaxAge:   int(utils.RefreshTTL().Seconds()),
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		refreshCol := database.OpenCollection("refresh_tokens")

		hash, _ := c.Cookie("refreshToken")
		utils.ClearRefreshCookie(c)

		// best effort revoke
		if hash != "" {
			now := time.Now().UTC()
			_, _ = refreshCol.UpdateOne(ctx, bson.M{
				"tokenHash": hash,
				"revokedAt": bson.M{"$exists": false},
			}, bson.M{
				"$set": bson.M{"revokedAt": now},
			})
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func RevokeAllRefreshTokens(c *gin.Context, userID bson.ObjectID) error {
	refreshCol := database.OpenCollection("refresh_tokens")
	now := time.Now().UTC()
	_, err := refreshCol.UpdateMany(c.Request.Context(), bson.M{
		"userId":    userID,
		"revokedAt": bson.M{"$exists": false},
	}, bson.M{
		"$set": bson.M{"revokedAt": now},
	})
	return err
}
