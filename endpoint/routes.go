package endpoint

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the REST API under /api. writeLimit guards every
// mutating route; pass nil to leave them unthrottled.
func RegisterRoutes(r gin.IRouter, writeLimit gin.HandlerFunc) {
	guard := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if writeLimit == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{writeLimit, h}
	}

	api := r.Group("/api")
	api.GET("/", APIRoot)
	api.GET("/stats/", GetDashboardStats)

	patients := api.Group("/patients")
	{
		patients.GET("/", ListPatients)
		patients.POST("/", guard(CreatePatient)...)
		patients.GET("/search", SearchPatients)
		patients.GET("/:id/", GetPatientInfo)
		patients.PUT("/:id/", guard(UpdatePatient)...)
		patients.PATCH("/:id/", guard(UpdatePatient)...)
		patients.DELETE("/:id/", guard(DeletePatient)...)
	}

	doctors := api.Group("/doctors")
	{
		doctors.GET("/", ListDoctors)
		doctors.POST("/", guard(CreateDoctor)...)
		doctors.GET("/:id/", GetDoctorInfo)
		doctors.PUT("/:id/", guard(UpdateDoctor)...)
		doctors.PATCH("/:id/", guard(UpdateDoctor)...)
		doctors.DELETE("/:id/", guard(DeleteDoctor)...)
	}

	staff := api.Group("/staff")
	{
		staff.GET("/", ListStaff)
		staff.POST("/", guard(CreateStaff)...)
		staff.GET("/:id/", GetStaffInfo)
		staff.PUT("/:id/", guard(UpdateStaff)...)
		staff.PATCH("/:id/", guard(UpdateStaff)...)
		staff.DELETE("/:id/", guard(DeleteStaff)...)
	}

	appointments := api.Group("/appointments")
	{
		appointments.GET("/", ListAppointments)
		appointments.POST("/", guard(CreateAppointment)...)
		appointments.GET("/upcoming", ListUpcomingAppointments)
		appointments.GET("/:id/", GetAppointmentInfo)
		appointments.PUT("/:id/", guard(UpdateAppointment)...)
		appointments.PATCH("/:id/", guard(UpdateAppointment)...)
		appointments.DELETE("/:id/", guard(DeleteAppointment)...)
	}
}
