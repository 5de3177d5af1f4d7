package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bdutucu/Optical-Store-Database/database"
)

// Health reports service and database health
func Health(c *fiber.Ctx) error {
	status := "ok"
	if err := database.CheckConnection(database.GetDB()); err != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status": status,
	})
}

// GetSQLLogs returns recently executed SQL statements
func GetSQLLogs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queries": database.SQLLogger.GetQueries(),
	})
}

// ClearSQLLogs empties the SQL statement log
func ClearSQLLogs(c *fiber.Ctx) error {
	database.SQLLogger.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
