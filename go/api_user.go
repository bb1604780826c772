package travelordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-travel-orders/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-travel-orders/internal/domains/users/ports"
)

const (
	msgUserPromoted     = "Usuário promovido a administrador com sucesso."
	msgUserAlreadyAdmin = "Usuário já é administrador."
)

// UserAPI implements user administration endpoints.
type UserAPI struct {
	service userports.Service
}

func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /api/users/promote-to-admin
// Grant admin rights to a user (admin)
func (api *UserAPI) PromoteToAdmin(c *gin.Context) {
	var payload userhttpmapper.PromoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformed(c, err)
		return
	}
	promoted, err := api.service.PromoteToAdmin(c.Request.Context(), principalFrom(c), payload.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	message := msgUserPromoted
	if !promoted {
		message = msgUserAlreadyAdmin
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
