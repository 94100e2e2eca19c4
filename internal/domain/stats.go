package domain

// DashboardStats сводка для административной панели
type DashboardStats struct {
	TotalBookings int64   // confirmed bookings
	TotalRevenue  float64 // sum of confirmed booking prices
	ActiveCourts  int64
	ActiveCoaches int64
}
