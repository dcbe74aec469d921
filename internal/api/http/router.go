package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tabletop-arena/internal/api/ws"
	"tabletop-arena/internal/config"
	"tabletop-arena/internal/game"
)

func NewRouter(hub *ws.Hub, rooms ws.RoomManager, cfg config.Config, types []game.Type) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/health", Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// WebSocket for lobby and game events
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")
	{
		rh := NewRoomHandler(hub, rooms)
		api.GET("/rooms", rh.ListRooms)
		api.GET("/rooms/:id", rh.GetRoom)

		ch := NewConfigHandler(cfg, types)
		api.GET("/config", ch.GetConfig)
	}

	return r
}
