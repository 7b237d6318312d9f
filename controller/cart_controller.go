package controller

import (
	"errors"
	"strconv"

	"commerce-backend/cart"
	"commerce-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

type CartController struct {
	Carts *cart.Service
}

func NewCartController(carts *cart.Service) *CartController {
	return &CartController{Carts: carts}
}

func (cc *CartController) Get(c *fiber.Ctx) error {
	crt, err := cc.Carts.GetOrCreate(c.Context(), middleware.TenantID(c), middleware.UserID(c))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(crt)
}

func (cc *CartController) AddItem(c *fiber.Ctx) error {
	var body struct {
		ItemID uint  `json:"itemId"`
		Qty    int64 `json:"qty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	crt, err := cc.Carts.AddLine(c.Context(), middleware.TenantID(c), middleware.UserID(c), body.ItemID, body.Qty)
	if err != nil {
		return cartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(crt)
}

func (cc *CartController) UpdateLine(c *fiber.Ctx) error {
	lineID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid line id"})
	}
	var body struct {
		Qty int64 `json:"qty"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	crt, err := cc.Carts.SetLineQuantity(c.Context(), middleware.TenantID(c), middleware.UserID(c), uint(lineID), body.Qty)
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(crt)
}

func (cc *CartController) Clear(c *fiber.Ctx) error {
	crt, err := cc.Carts.Clear(c.Context(), middleware.TenantID(c), middleware.UserID(c))
	if err != nil {
		return cartError(c, err)
	}
	return c.JSON(crt)
}

func cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cart.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, cart.ErrItemNotFound), errors.Is(err, cart.ErrLineNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, cart.ErrCurrencyMismatch):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
