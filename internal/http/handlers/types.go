package handlers

import "spiceroute-services/internal/analytics"

// Data file names under the configured data directory. The migration CLI
// shares this allow-list when copying files into Firestore.
const (
	FileStaffCredentials = "staff-credentials.json"
	FileOrders           = "orders.json"
	FileAnalyticsData    = "analytics_data.json"
	FileTodaysSpecial    = "todays-special.json"
	FileMenu             = "menu.json"
	FileCombos           = "combos.json"
	FileOffers           = "offers.json"
	FileMenuAvailability = "menu-availability.json"
	FileInventory        = "inventory.json"
	FileBlogPosts        = "blog-posts.json"
	FileAboutUs          = "about-us.json"
	FileReviews          = "reviews.json"
	FileEventBookings    = "event-bookings.json"
	FileRolesPermissions = "roles-permissions.json"
)

type MenuProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsVeg       bool    `json:"isVeg"`
}

type MenuCategory struct {
	Category string        `json:"category"`
	Products []MenuProduct `json:"products"`
}

type MenuFile struct {
	Menu []MenuCategory `json:"menu"`
}

type Combo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Items       []string `json:"items"`
	Image       string   `json:"image,omitempty"`
}

type CombosFile struct {
	Combos []Combo `json:"combos"`
}

type Offer struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Code               string  `json:"code,omitempty"`
	ValidUntil         string  `json:"validUntil,omitempty"`
}

type OffersFile struct {
	Offers []Offer `json:"offers"`
}

type TodaysSpecialFile struct {
	Specials  []MenuProduct `json:"specials"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}

type AvailabilityFile struct {
	Availability map[string]bool `json:"availability"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customerName"`
	Phone           string      `json:"phone,omitempty"`
	OrderType       string      `json:"orderType"`
	TableNumber     string      `json:"tableNumber,omitempty"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	Status          string      `json:"status"`
	Waiter          string      `json:"waiter,omitempty"`
	Timestamp       string      `json:"timestamp"`
}

type OrdersFile struct {
	Orders []Order `json:"orders"`
}

// RevenueAnalytics and DailyAnalytics arrive precomputed in
// analytics_data.json and are served read-only.
type RevenueAnalytics struct {
	Today     float64 `json:"today"`
	ThisWeek  float64 `json:"thisWeek"`
	ThisMonth float64 `json:"thisMonth"`
	Total     float64 `json:"total"`
}

type DailyAnalytics struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type AnalyticsFile struct {
	Revenue RevenueAnalytics        `json:"revenue"`
	Daily   []DailyAnalytics        `json:"daily"`
	Waiters []analytics.WaiterStats `json:"waiters"`
}

type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Author      string   `json:"author,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PublishedAt string   `json:"publishedAt"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

type BlogFile struct {
	Posts []BlogPost `json:"posts"`
}

type AboutUsContent struct {
	Title     string   `json:"title"`
	Story     string   `json:"story"`
	Mission   string   `json:"mission,omitempty"`
	Vision    string   `json:"vision,omitempty"`
	Images    []string `json:"images,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type Review struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type ReviewsFile struct {
	Reviews []Review `json:"reviews"`
}

type EventBooking struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	EventType string `json:"eventType"`
	Date      string `json:"date"`
	Guests    int    `json:"guests"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type EventBookingsFile struct {
	Bookings []EventBooking `json:"bookings"`
}

type StaffCredential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
	Name         string `json:"name,omitempty"`
}

type InventoryFile struct {
	Items []analytics.InventoryItem `json:"items"`
}
