package handlers

import (
	"github.com/gin-gonic/gin"

	userRepoPkg "unityconsult/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct. It is assembled
// in main and handed to the route registrars.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	SignUp         gin.HandlerFunc
	SignIn         gin.HandlerFunc
	SignOut        gin.HandlerFunc
	UpdateFCMToken gin.HandlerFunc

	// Counselor endpoints
	ListCounselors           gin.HandlerFunc
	GetCounselor             gin.HandlerFunc
	CompleteCounselorProfile gin.HandlerFunc

	// Client endpoints
	GetClientProfile      gin.HandlerFunc
	GetClientByID         gin.HandlerFunc
	CompleteClientProfile gin.HandlerFunc

	// Schedule endpoints
	ListSchedule gin.HandlerFunc
	CreateSlot   gin.HandlerFunc
	DeleteSlot   gin.HandlerFunc

	// Booking wizard endpoints
	StartWizard     gin.HandlerFunc
	GetWizard       gin.HandlerFunc
	ChooseCounselor gin.HandlerFunc
	Availability    gin.HandlerFunc
	SelectSlot      gin.HandlerFunc
	WizardSummary   gin.HandlerFunc
	WizardBack      gin.HandlerFunc
	CancelWizard    gin.HandlerFunc

	// Booking management endpoints
	ListMyBookings    gin.HandlerFunc
	RescheduleBooking gin.HandlerFunc

	// Payment endpoints
	InitializePayment gin.HandlerFunc
	VerifyPayment     gin.HandlerFunc

	// Review endpoints
	SubmitReview         gin.HandlerFunc
	ListCounselorReviews gin.HandlerFunc
	ListMyReviews        gin.HandlerFunc
	ReviewAverages       gin.HandlerFunc

	// Article endpoints
	PublishArticle        gin.HandlerFunc
	ListArticles          gin.HandlerFunc
	ListCounselorArticles gin.HandlerFunc
	ListMyArticles        gin.HandlerFunc

	// Notification endpoints
	ListNotifications     gin.HandlerFunc
	MarkNotificationsRead gin.HandlerFunc

	// Admin endpoints
	AdminListClients        gin.HandlerFunc
	AdminListCounselors     gin.HandlerFunc
	AdminApproveCounselor   gin.HandlerFunc
	AdminSetCounselorStatus gin.HandlerFunc
}
