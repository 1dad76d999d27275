package helper

import (
	"errors"
	"fmt"
	"hotel_manager/constants"
	"hotel_manager/database"
	"hotel_manager/model"
	"hotel_manager/utils"
	"log"
	"net/mail"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GetGuestByEmail(e string) (*model.Guest, error) {
	db := database.DB
	var guest model.Guest
	if err := db.Where(&model.Guest{Email: e}).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guest, nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["guestId"] = tokenClaim.GuestId
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["guestId"] = tokenClaim.GuestId
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoAccountFromToken đọc claim staff từ token, trả kèm cờ role
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false, false, false
	}
	tokenClaim := token.Claims.(jwt.MapClaims)
	accountIdFloat, ok := tokenClaim["accountId"].(float64)
	if !ok || accountIdFloat == 0 {
		return model.TokenClaim{}, false, false, false
	}
	accountId := uint(accountIdFloat)
	username, _ := tokenClaim["username"].(string)

	var account model.Account
	db := database.DB
	if err := db.First(&account, accountId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Account not found: id=%d", accountId)
			utils.ErrorResponse(c, fiber.StatusUnauthorized, "Tài khoản không tồn tại", err)
		} else {
			utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return model.TokenClaim{}, false, false, false
	}

	accountInfo := model.TokenClaim{
		AccountId: accountId,
		Username:  username,
	}

	return accountInfo,
		account.Role == constants.ROLE_ADMIN,
		account.Role == constants.ROLE_MANAGER,
		account.Role == constants.ROLE_RECEPTIONIST
}

// GetInfoGuestFromToken đọc claim khách từ token optional; trả claim rỗng nếu
// là khách vãng lai
func GetInfoGuestFromToken(c *fiber.Ctx) (model.TokenClaim, model.Guest) {
	var emptyGuest model.Guest
	var anonClaim = model.TokenClaim{
		GuestId:  0,
		Username: "",
	}

	u := c.Locals("user")
	if u == nil {
		return anonClaim, emptyGuest
	}

	userToken, ok := u.(*jwt.Token)
	if !ok || userToken == nil {
		return anonClaim, emptyGuest
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return anonClaim, emptyGuest
	}

	guestIdFloat := float64(0)
	if gid, ok := claims["guestId"].(float64); ok {
		guestIdFloat = gid
	}
	if guestIdFloat == 0 {
		return anonClaim, emptyGuest
	}

	username, _ := claims["username"].(string)
	tokenClaim := model.TokenClaim{
		GuestId:  uint(guestIdFloat),
		Username: username,
	}

	var guest model.Guest
	db := database.DB
	if err := db.First(&guest, tokenClaim.GuestId).Error; err != nil {
		log.Printf("Guest not found (id=%d): %v", tokenClaim.GuestId, err)
		return anonClaim, emptyGuest
	}

	c.Locals("guest", &guest)
	return tokenClaim, guest
}
