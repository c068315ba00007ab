package server

import (
	"strings"

	"github.com/MathisL971/invoicegen/internal/config"
	"github.com/MathisL971/invoicegen/internal/userctx"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

const HeaderAccount = "X-Account-Id"

// AccountContext resolves the acting account from the request header,
// falling back to the configured default for single-tenant
// deployments. Requests with no resolvable account are rejected.
func AccountContext(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderAccount))

		var accountID snowflake.ID
		if raw != "" {
			parsed, err := snowflake.ParseString(raw)
			if err != nil {
				AbortWithError(c, newValidationError("account", "invalid_account", "invalid account id"))
				return
			}
			accountID = parsed
		} else if cfg.DefaultAccountID != 0 {
			accountID = snowflake.ID(cfg.DefaultAccountID)
		} else {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := userctx.WithAccountID(c.Request.Context(), accountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
