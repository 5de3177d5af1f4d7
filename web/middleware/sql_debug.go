package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/bdutucu/Optical-Store-Database/database"
)

// SQLDebugMiddleware counts the SQL statements executed while serving a
// request and reports the number in the X-SQL-Queries response header.
func SQLDebugMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		before := len(database.SQLLogger.GetQueries())

		err := c.Next()

		after := len(database.SQLLogger.GetQueries())
		executed := after - before
		if executed < 0 {
			// Ring buffer wrapped during the request
			executed = after
		}
		c.Set("X-SQL-Queries", strconv.Itoa(executed))
		c.Locals("SQLQueryCount", executed)

		return err
	}
}
