package entity

import (
	"regexp"
	"strings"
)

// Testimonial is a student testimonial.
type Testimonial struct {
	Id          int    `json:"id"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	University  string `json:"university"`
	Testimonial string `json:"testimonial"`
	CreatedAt   string `json:"created_at"`
}

// ProjectClient is a testimonial from a project client.
type ProjectClient struct {
	Id          int    `json:"id"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Company     string `json:"company"`
	Testimonial string `json:"testimonial"`
	CreatedAt   string `json:"created_at"`
}

// Image is an uploaded picture: documentation, app logo or partner logo.
type Image struct {
	Id        int    `json:"id"`
	Image     string `json:"image"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Content is an editable text block such as footer or about-us copy.
type Content struct {
	Id          int    `json:"id"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// LogEntry records a login or logout.
type LogEntry struct {
	Id           int    `json:"id"`
	Action       string `json:"action"`
	Timestamp    string `json:"timestamp"`
	DeviceInfo   string `json:"device_info"`
	IpAddress    string `json:"ip_address"`
	UserTimezone string `json:"user_timezone,omitempty"`
}

const (
	LoginAction  = "login"
	LogoutAction = "logout"
)

// Device is device info split into its parts.
type Device struct {
	Name    string
	Details string
	Ip      string
}

var ipPattern = regexp.MustCompile(`IP: ([^\s]+)`)

// ParseDevice splits "<device> - <details> - IP: <ip>".
func ParseDevice(info string) (dev Device) {

	name, rest, _ := strings.Cut(info, " - ")

	dev.Name = name
	if dev.Name == "" {
		dev.Name = "Unknown Device"
	}

	dev.Details, _, _ = strings.Cut(rest, " - IP:")

	dev.Ip = "Unknown IP"
	if match := ipPattern.FindStringSubmatch(rest); match != nil {
		dev.Ip = match[1]
	}
	return
}

// DeviceClass buckets device info into mobile, mac, windows, linux or other.
func DeviceClass(info string) string {

	lower := strings.ToLower(info)
	switch {
	case strings.Contains(lower, "mobile"), strings.Contains(lower, "android"), strings.Contains(lower, "iphone"):
		return "mobile"
	case strings.Contains(lower, "mac"):
		return "mac"
	case strings.Contains(lower, "windows"):
		return "windows"
	case strings.Contains(lower, "linux"):
		return "linux"
	}
	return "other"
}

// DayCount is the number of logins and logouts on one day.
type DayCount struct {
	Day    string
	Login  int
	Logout int
}

// DeviceCount is the number of log entries per device class.
type DeviceCount struct {
	Class string
	Count int
}
