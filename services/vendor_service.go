package services

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"maintenance-chatbot-backend/models"
)

// VendorDirectory is a read-only mapping from service category to vendor.
// Loaded once at startup; never mutated afterwards, so it is safe to share
// across concurrent requests without locking.
type VendorDirectory struct {
	vendors []models.Vendor
}

// NewVendorDirectory wraps an in-memory vendor list (used by tests and
// by callers that source vendors elsewhere).
func NewVendorDirectory(vendors []models.Vendor) *VendorDirectory {
	return &VendorDirectory{vendors: vendors}
}

// LoadVendorDirectory reads vendor records from a JSON file. A missing or
// unreadable file degrades to an empty directory, never an error: vendor
// resolution then falls back to the unassigned sentinel.
func LoadVendorDirectory(path string) *VendorDirectory {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Vendor file %s not loaded: %v", path, err)
		return &VendorDirectory{}
	}

	var vendors []models.Vendor
	if err := json.Unmarshal(data, &vendors); err != nil {
		log.Printf("Vendor file %s is not valid JSON: %v", path, err)
		return &VendorDirectory{}
	}

	log.Printf("Loaded %d vendors from %s", len(vendors), path)
	return &VendorDirectory{vendors: vendors}
}

// FindByCategory returns the first vendor whose category matches,
// case-insensitively. File order is the tie-break when a category has
// multiple vendors.
func (vd *VendorDirectory) FindByCategory(category string) (string, bool) {
	for _, v := range vd.vendors {
		if strings.EqualFold(v.Category, category) {
			return v.Name, true
		}
	}
	return "", false
}

// Len reports the number of loaded vendor entries
func (vd *VendorDirectory) Len() int {
	return len(vd.vendors)
}
