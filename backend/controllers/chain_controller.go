package controllers

import (
	"github.com/gofiber/fiber/v2"

	"institute/backend/chain"
	"institute/backend/utils"
)

type ChainController struct {
	Chain chain.Gateway
}

func NewChainController(gateway chain.Gateway) *ChainController {
	return &ChainController{Chain: gateway}
}

// Mint godoc
// @Summary Mint QUEST tokens to a wallet
// @Tags chain
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "address and amount"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /mint [post]
func (cc *ChainController) Mint(c *fiber.Ctx) error {
	if cc.Chain == nil {
		return utils.InternalServerError(c, "Chain gateway is not configured")
	}

	type mintInput struct {
		Address string `json:"address"`
		Amount  int64  `json:"amount"`
	}

	var input mintInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.Amount == 0 {
		return utils.BadRequest(c, "Address and amount are required")
	}

	transactionHash, err := cc.Chain.MintTokens(c.Context(), input.Address, input.Amount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error minting tokens",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"transactionHash": transactionHash,
	})
}

// Balance godoc
// @Summary Get a wallet's QUEST token balance
// @Description Responds with balance 0 when the chain lookup fails
// @Tags chain
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /getTokens [post]
func (cc *ChainController) Balance(c *fiber.Ctx) error {
	if cc.Chain == nil {
		return utils.InternalServerError(c, "Chain gateway is not configured")
	}

	type balanceInput struct {
		Address string `json:"address"`
	}

	var input balanceInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" {
		return utils.BadRequest(c, "User address is required")
	}

	balance, err := cc.Chain.QuestTokenBalance(c.Context(), input.Address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"balance": 0,
			"message": "Error fetching QUEST token balance",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"balance": balance,
	})
}

// UpdateResume godoc
// @Summary Push course statistics to the on-chain resume
// @Tags chain
// @Accept json
// @Produce json
// @Param request body chain.ResumeProgress true "Resume progress"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /updateResume [post]
func (cc *ChainController) UpdateResume(c *fiber.Ctx) error {
	if cc.Chain == nil {
		return utils.InternalServerError(c, "Chain gateway is not configured")
	}

	var input chain.ResumeProgress
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.CourseID == "" || input.CourseName == "" {
		return utils.BadRequest(c, "All fields are required")
	}

	transactionHash, err := cc.Chain.UpdateResumeProgress(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error updating resume progress",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"transactionHash": transactionHash,
	})
}

// MintResume godoc
// @Summary Mint a developer resume NFT
// @Tags chain
// @Accept json
// @Produce json
// @Param request body map[string]interface{} true "Recipient and metadata"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} map[string]interface{}
// @Router /mintResume [post]
func (cc *ChainController) MintResume(c *fiber.Ctx) error {
	if cc.Chain == nil {
		return utils.InternalServerError(c, "Chain gateway is not configured")
	}

	type mintResumeInput struct {
		Address     string `json:"address"`
		Name        string `json:"name"`
		Description string `json:"description"`
		BaseURI     string `json:"baseUri"`
	}

	var input mintResumeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Address == "" || input.Name == "" {
		return utils.BadRequest(c, "Address and name are required")
	}

	transactionHash, err := cc.Chain.MintResume(c.Context(), input.Address, input.Name, input.Description, input.BaseURI)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error minting resume NFT",
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"transactionHash": transactionHash,
	})
}
