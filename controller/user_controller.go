package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rintud72/medicine-shop-backend/mail"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/utils"
)

const otpTTL = 10 * time.Minute

type UserController struct {
	DB        *gorm.DB
	Mailer    *mail.Mailer
	JWTSecret string
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return c.Status(400).JSON(fiber.Map{"message": "all fields are required"})
	}

	var existing model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"message": "user already exists with this email"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error registering user"})
	}

	otp := utils.GenerateOTP(6)
	user := model.User{
		Name:         in.Name,
		Email:        in.Email,
		Password:     string(hashed),
		Role:         "user",
		OTP:          otp,
		OTPExpiresAt: time.Now().Add(otpTTL),
		CreatedAt:    time.Now(),
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		log.Printf("Error registering user: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error registering user"})
	}

	subject := "OTP Verification - Medicine Shop"
	text := fmt.Sprintf("Hello %s,\n\nYour OTP for verification is: %s\nThis OTP will expire in 10 minutes.\n\n- Medicine Shop", in.Name, otp)
	if err := uc.Mailer.Send(in.Email, subject, text); err != nil {
		log.Printf("Error sending OTP mail: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error sending verification email"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "OTP sent to your email, please verify your account"})
}

func (uc *UserController) VerifyOTP(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}

	var user model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}
	if user.IsVerified {
		return c.JSON(fiber.Map{"message": "user already verified"})
	}
	if user.OTP != in.OTP {
		return c.Status(400).JSON(fiber.Map{"message": "invalid OTP"})
	}
	if time.Now().After(user.OTPExpiresAt) {
		return c.Status(400).JSON(fiber.Map{"message": "OTP expired"})
	}

	user.IsVerified = true
	user.OTP = ""
	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error verifying OTP"})
	}

	return c.JSON(fiber.Map{"message": "user verified successfully"})
}

func (uc *UserController) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(400).JSON(fiber.Map{"message": "email and password are required"})
	}

	var user model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(400).JSON(fiber.Map{"message": "invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "error logging in"})
	}
	if !user.IsVerified {
		return c.Status(403).JSON(fiber.Map{"message": "account not verified, please verify OTP first"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid credentials"})
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.JWTSecret))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error logging in"})
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   signed,
		"user":    user,
	})
}

func (uc *UserController) ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}

	var user model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}

	otp := utils.GenerateOTP(6)
	user.OTP = otp
	user.OTPExpiresAt = time.Now().Add(otpTTL)
	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error sending reset OTP"})
	}

	subject := "Reset Password OTP - Medicine Shop"
	text := fmt.Sprintf("Your OTP for resetting password is: %s. It will expire in 10 minutes.", otp)
	if err := uc.Mailer.Send(in.Email, subject, text); err != nil {
		log.Printf("Error sending reset OTP mail: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error sending reset OTP"})
	}

	return c.JSON(fiber.Map{"message": "password reset OTP sent to your email"})
}

func (uc *UserController) VerifyResetOTP(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}

	var user model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}
	if user.OTP != in.OTP {
		return c.Status(400).JSON(fiber.Map{"message": "invalid OTP"})
	}
	if time.Now().After(user.OTPExpiresAt) {
		return c.Status(400).JSON(fiber.Map{"message": "OTP expired"})
	}

	return c.JSON(fiber.Map{"message": "OTP verified, you can now reset your password"})
}

func (uc *UserController) ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"message": "new password is required"})
	}

	var user model.User
	if err := uc.DB.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}
	if user.OTP != in.OTP || time.Now().After(user.OTPExpiresAt) {
		return c.Status(400).JSON(fiber.Map{"message": "invalid or expired OTP"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error resetting password"})
	}
	user.Password = string(hashed)
	user.OTP = ""
	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error resetting password"})
	}

	return c.JSON(fiber.Map{"message": "password reset successfully, you can now log in with your new password"})
}

func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user model.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}

	return c.JSON(fiber.Map{"user": user})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}

	var user model.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "user not found"})
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error updating profile"})
	}

	return c.JSON(fiber.Map{"message": "profile updated successfully", "user": user})
}
