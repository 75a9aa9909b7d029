package main

import (
	"time"

	"edufin/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (a *app) routes() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(a.cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = a.cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	admin := []string{models.RoleAdmin}
	student := []string{models.RoleStudent}

	// Public.
	r.POST("/auth/login", a.loginHandler)
	r.POST("/auth/password-reset/request", a.requestPasswordResetHandler)
	r.POST("/auth/password-reset", a.performPasswordResetHandler)
	r.POST("/transaction/webhook/verify", a.paystackWebhookHandler)

	// Admin accounts and permissions. Managing admin accounts needs both
	// capabilities; user_management alone is not enough.
	admins := r.Group("/admins", a.guard(admin, []string{
		models.PermUserManagement,
		models.PermSecurityAndAccessControl,
	}))
	{
		admins.POST("", a.createAdminHandler)
		admins.GET("", a.listAdminsHandler)
		admins.GET("/:id", a.getAdminHandler)
		admins.PATCH("/:id", a.updateAdminHandler)
		admins.PATCH("/:id/permissions", a.replaceAdminPermissionsHandler)
		admins.DELETE("/:id", a.deleteAdminHandler)
	}

	students := r.Group("/students", a.guard(admin, []string{models.PermStudentManagement}))
	{
		students.POST("", a.createStudentHandler)
		students.GET("", a.listStudentsHandler)
		students.GET("/:id", a.getStudentHandler)
		students.PATCH("/:id", a.updateStudentHandler)
		students.DELETE("/:id", a.deleteStudentHandler)
	}

	programmes := r.Group("/programmes", a.guard(admin, []string{models.PermProgrammeManagement}))
	{
		programmes.POST("", a.createProgrammeHandler)
		programmes.GET("", a.listProgrammesHandler)
		programmes.GET("/:id", a.getProgrammeHandler)
		programmes.PATCH("/:id", a.updateProgrammeHandler)
		programmes.DELETE("/:id", a.deleteProgrammeHandler)
		programmes.POST("/:id/students/:studentId", a.enrollStudentHandler)
		programmes.DELETE("/:id/students/:studentId", a.unenrollStudentHandler)
	}

	billTypes := r.Group("/bill-types", a.guard(admin, []string{models.PermFeeAndDuesManagement}))
	{
		billTypes.POST("", a.createBillTypeHandler)
		billTypes.GET("", a.listBillTypesHandler)
		billTypes.GET("/:id", a.getBillTypeHandler)
		billTypes.PATCH("/:id", a.updateBillTypeHandler)
		billTypes.DELETE("/:id", a.deleteBillTypeHandler)
	}

	bills := r.Group("/bills", a.guard(admin, []string{models.PermFeeAndDuesManagement}))
	{
		bills.POST("", a.createBillHandler)
		bills.GET("", a.listBillsHandler)
		bills.GET("/:id", a.getBillHandler)
		bills.PATCH("/:id", a.updateBillHandler)
		bills.DELETE("/:id", a.deleteBillHandler)
	}

	paymentCategories := r.Group("/payment-categories", a.guard(admin, []string{models.PermPaymentManagement}))
	{
		paymentCategories.POST("", a.createPaymentTypeHandler)
		paymentCategories.GET("", a.listPaymentTypesHandler)
		paymentCategories.GET("/:id", a.getPaymentTypeHandler)
		paymentCategories.PATCH("/:id", a.updatePaymentTypeHandler)
		paymentCategories.DELETE("/:id", a.deletePaymentTypeHandler)
	}

	payments := r.Group("/payments", a.guard(admin, []string{models.PermPaymentManagement}))
	{
		payments.GET("", a.listPaymentsHandler)
		payments.GET("/:id", a.getPaymentHandler)
		payments.PATCH("/:id/status", a.updatePaymentStatusHandler)
		payments.POST("/:id/refund", a.refundPaymentHandler)
	}

	// The aid catalogue (types and their discounts) is gated separately from
	// application processing.
	aidTypes := r.Group("/financial-aid-types", a.guard(admin, []string{models.PermFinancialAidGradesManagement}))
	{
		aidTypes.POST("", a.createAidTypeHandler)
		aidTypes.GET("", a.listAidTypesHandler)
		aidTypes.GET("/:id", a.getAidTypeHandler)
		aidTypes.PATCH("/:id", a.updateAidTypeHandler)
		aidTypes.DELETE("/:id", a.deleteAidTypeHandler)
	}

	aidDiscounts := r.Group("/financial-aid-discounts", a.guard(admin, []string{models.PermFinancialAidGradesManagement}))
	{
		aidDiscounts.POST("", a.createAidDiscountHandler)
		aidDiscounts.GET("", a.listAidDiscountsHandler)
		aidDiscounts.GET("/:id", a.getAidDiscountHandler)
		aidDiscounts.PATCH("/:id", a.updateAidDiscountHandler)
		aidDiscounts.DELETE("/:id", a.deleteAidDiscountHandler)
	}

	aidApps := r.Group("/financial-aid-applications", a.guard(admin, []string{models.PermFinancialAidManagement}))
	{
		aidApps.GET("", a.listAidApplicationsHandler)
		aidApps.GET("/:id", a.getAidApplicationHandler)
		aidApps.PATCH("/:id/approve", a.approveAidApplicationHandler)
		aidApps.PATCH("/:id/reject", a.rejectAidApplicationHandler)
		aidApps.DELETE("/:id", a.deleteAidApplicationHandler)
	}

	ticketCategories := r.Group("/support-ticket-categories", a.guard(admin, []string{models.PermUserManagement}))
	{
		ticketCategories.POST("", a.createTicketCategoryHandler)
		ticketCategories.GET("", a.listTicketCategoriesHandler)
		ticketCategories.PATCH("/:id", a.updateTicketCategoryHandler)
		ticketCategories.DELETE("/:id", a.deleteTicketCategoryHandler)
	}

	tickets := r.Group("/support-tickets", a.guard(admin, []string{models.PermUserManagement}))
	{
		tickets.POST("", a.createTicketHandler)
		tickets.GET("", a.listTicketsHandler)
		tickets.GET("/:id", a.getTicketHandler)
		tickets.PATCH("/:id", a.updateTicketHandler)
		tickets.DELETE("/:id", a.deleteTicketHandler)
	}

	r.GET("/admin/stats/dashboard",
		a.guard(admin, []string{models.PermDashboardAccess}), a.adminDashboardStatsHandler)

	// Student portal. Role match is enough; no permission rows for students.
	portal := r.Group("/student", a.guard(student, nil))
	{
		portal.GET("/profile", a.studentProfileHandler)
		portal.GET("/bills", a.studentBillsHandler)
		portal.GET("/payments", a.studentPaymentsHandler)
		portal.GET("/payments/:reference", a.studentPaymentHandler)
		portal.GET("/applications", a.studentApplicationsHandler)
		portal.GET("/financial-aid/info", a.studentAidInfoHandler)
		portal.POST("/financial-aid/apply", a.studentApplyForAidHandler)
		portal.GET("/stats/bills", a.studentBillStatsHandler)
		portal.GET("/stats/payments", a.studentPaymentStatsHandler)
		portal.GET("/stats/dashboard", a.studentDashboardStatsHandler)
	}

	r.POST("/transaction/initiate", a.guard(student, nil), a.initiateTransactionHandler)

	return r
}
