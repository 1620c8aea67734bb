package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"institute/backend/auth"
	"institute/backend/config"
	"institute/backend/utils"
)

type AuthController struct {
	Cfg    *config.Config
	Nonces *auth.NonceStore
}

func NewAuthController(cfg *config.Config, nonces *auth.NonceStore) *AuthController {
	return &AuthController{Cfg: cfg, Nonces: nonces}
}

// GenerateNonce godoc
// @Summary Issue a login nonce
// @Description Returns a single-use nonce the wallet must sign to log in
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /generateNonce [get]
func (ac *AuthController) GenerateNonce(c *fiber.Ctx) error {
	nonce, err := ac.Nonces.Issue()
	if err != nil {
		return utils.InternalServerError(c, "Could not generate nonce")
	}

	return c.JSON(fiber.Map{
		"nonce": nonce,
	})
}

// GenerateJWT godoc
// @Summary Wallet login
// @Description Verifies a signed nonce and sets the auth-token session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Signed login payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /generateJWT [post]
func (ac *AuthController) GenerateJWT(c *fiber.Ctx) error {
	type loginInput struct {
		Address   string `json:"address"`
		PublicKey string `json:"publicKey"`
		Signature string `json:"signature"`
		Message   string `json:"message"`
		Nonce     string `json:"nonce"`
	}

	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Address == "" || input.PublicKey == "" || input.Signature == "" ||
		input.Message == "" || input.Nonce == "" {
		return utils.BadRequest(c, "Address, publicKey, signature, message and nonce are required")
	}

	if !ac.Nonces.Consume(input.Nonce) {
		return utils.Unauthorized(c, "Unknown or expired nonce")
	}
	if !strings.Contains(input.Message, input.Nonce) {
		return utils.Unauthorized(c, "Signed message does not contain the nonce")
	}

	if err := auth.VerifyLogin(input.Address, input.PublicKey, input.Signature, []byte(input.Message)); err != nil {
		return utils.Unauthorized(c, "Signature verification failed")
	}

	token, err := utils.GenerateJWTToken(input.Address, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}
	utils.SetAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"address": input.Address,
	})
}

// Session godoc
// @Summary Session check
// @Description Reports whether the request carries a valid session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /session [get]
func (ac *AuthController) Session(c *fiber.Ctx) error {
	address, err := utils.ExtractAddressFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"loggedIn": false,
		})
	}

	return c.JSON(fiber.Map{
		"loggedIn": true,
		"address":  address,
	})
}

// VerifyJWT godoc
// @Summary Verify session token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /verifyJWT [get]
func (ac *AuthController) VerifyJWT(c *fiber.Ctx) error {
	address, err := utils.ExtractAddressFromToken(c, ac.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"valid":   false,
			"message": "Invalid token",
		})
	}

	return c.JSON(fiber.Map{
		"valid":   true,
		"address": address,
	})
}

// Logout godoc
// @Summary Log out
// @Description Expires the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	utils.ClearAuthCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
	})
}
