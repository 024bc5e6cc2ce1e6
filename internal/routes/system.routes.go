package routes

import (
	"jelly/internal/controllers"
	"jelly/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterSystemRoutes wires the websocket, Prometheus and source-map endpoints
func RegisterSystemRoutes(r *gin.Engine, socket *controllers.WebSocketController, recorder *services.Recorder) {
	r.GET("/ws", socket.HandleWebSocket)
	r.GET("/metrics", gin.WrapH(recorder.Handler()))
	r.GET("/injection-tss-mv3.js.map", controllers.SourceMap)
	r.NoRoute(controllers.NotFound)
}
