package health

import (
	"github.com/ethanbaker/ragify/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// Info describes what the server was started with
type Info struct {
	Model         string `json:"model"`
	Persona       string `json:"persona"`
	DocumentChars int    `json:"document_chars"`
}

var info Info

// Init records the startup details reported by the health route
func Init(i Info) {
	info = i
}

// Return status of the API
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccessResponse("OK", info).AsGinResponse())
}
