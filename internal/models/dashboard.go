package models

// DashboardStats summarises portal contents for admins.
type DashboardStats struct {
	TotalUsers      int `json:"totalUsers"`
	TotalLabs       int `json:"totalLabs"`
	TotalTimetables int `json:"totalTimetables"`
	TodayBookings   int `json:"todayBookings"`
}
