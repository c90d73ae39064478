package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) Router() *gin.Engine {
	if s.cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register", rateLimit(s.cfg.RateDefaultPerMin), s.register)
	r.POST("/login", rateLimit(s.cfg.RateDefaultPerMin), s.login)

	auth := r.Group("/", s.authRequired())

	// Session probes stay outside the request budget so a polling frontend
	// cannot starve real traffic.
	auth.GET("/check_session", s.checkSession)
	auth.POST("/logout", s.logout)

	api := auth.Group("/", rateLimit(s.cfg.RateDefaultPerMin))

	api.GET("/get_api_key", s.getAPIKey)
	api.POST("/api_keys", s.saveAPIKey)
	api.GET("/api_keys", s.listAPIKeys)
	api.DELETE("/api_keys/:id", s.deleteAPIKey)

	api.POST("/projects", s.createProject)
	api.GET("/projects", s.listProjects)
	api.GET("/projects/:id", s.getProject)
	api.PUT("/projects/:id", s.updateProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/projects/:id/collaborators", s.listCollaborators)
	api.POST("/projects/:id/collaborators", s.addCollaborator)
	api.DELETE("/projects/:id/collaborators/:username", s.removeCollaborator)

	api.POST("/projects/:id/requirements", s.createRequirement)
	api.GET("/projects/:id/requirements", s.listRequirements)
	api.GET("/requirements/:id", s.getRequirement)
	api.PUT("/requirements/:id", s.updateRequirement)
	api.DELETE("/requirements/:id", s.deleteRequirement)

	api.POST("/save_test_cases", s.saveTestCases)
	api.PUT("/update_test_cases/:id", s.updateTestCases)
	api.GET("/history", s.listHistory)
	api.GET("/history/:id", s.getHistory)
	api.DELETE("/history/:id", s.deleteHistory)

	// Model calls burn provider quota, so they carry tighter budgets than
	// the plain CRUD surface.
	generate := auth.Group("/", rateLimit(s.cfg.RateGeneratePerMin))
	generate.POST("/generate_test_cases", s.generateTestCases)
	generate.POST("/generate_test_cases_stream", s.generateTestCasesStream)
	generate.POST("/generate_test_cases_for_requirement/:id", s.generateForRequirement)

	chat := auth.Group("/", rateLimit(s.cfg.RateChatPerMin))
	chat.POST("/chat_with_assistant", s.chatWithAssistant)

	return r
}
