package http

import "github.com/gofiber/fiber/v2"

type Module interface {
	Register(r fiber.Router) // each module registers its own routes on the shared router
}
