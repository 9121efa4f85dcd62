package server

func (s *Server) routes() {
	e := s.echo

	e.GET("/health", s.health())

	e.POST("/auth/register", s.register())
	e.POST("/auth/login", s.login())
	e.GET("/auth/me", s.me(), s.requireAuth)

	projects := e.Group("/projects", s.requireAuth)
	projects.GET("", s.listProjects())
	projects.POST("", s.createProject())
	projects.GET("/:id", s.getBoard())
	projects.PUT("/:id", s.updateProject())
	projects.DELETE("/:id", s.deleteProject())

	columns := e.Group("/columns", s.requireAuth)
	columns.GET("/project/:projectId", s.listColumns())
	columns.POST("", s.createColumn())
	columns.PUT("/reorder", s.reorderColumns())
	columns.PUT("/:id", s.updateColumn())
	columns.DELETE("/:id", s.deleteColumn())

	tasks := e.Group("/tasks", s.requireAuth)
	tasks.GET("/project/:projectId", s.listTasksByProject())
	tasks.GET("/column/:columnId", s.listTasksByColumn())
	tasks.POST("", s.createTask())
	tasks.PUT("/reorder", s.reorderTasks())
	tasks.PUT("/:id/move", s.moveTask())
	tasks.PUT("/:id", s.updateTask())
	tasks.DELETE("/:id", s.deleteTask())
}
