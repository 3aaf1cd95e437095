package domain

import "github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/models"

// DemoProducts is the catalog a fresh database starts with.
func DemoProducts() []models.Product {
	return []models.Product{
		{SKU: "LAPTOP-001", Name: "MacBook Pro 14", Brand: "Apple", Category: "Electrónica", Price: 1999, Quantity: 15, IsActive: true,
			Description: "Laptop de alto rendimiento para profesionales", ImageURL: "/laptop-pro.jpg"},
		{SKU: "PHONE-001", Name: "iPhone 15 Pro", Brand: "Apple", Category: "Electrónica", Price: 999, Quantity: 25, IsActive: true,
			Description: "Smartphone de última generación con cámara avanzada", ImageURL: "/iphone-pro.jpg"},
		{SKU: "HEADPHONES-001", Name: "Sony WH-1000XM5", Brand: "Sony", Category: "Audio", Price: 399, Quantity: 10, IsActive: true,
			Description: "Auriculares con cancelación de ruido premium", ImageURL: "/headphones-premium.jpg"},
		{SKU: "WATCH-001", Name: "Apple Watch Ultra", Brand: "Apple", Category: "Accesorios", Price: 799, Quantity: 8, IsActive: true,
			Description: "Reloj inteligente resistente con múltiples sensores", ImageURL: "/modern-smartwatch.png"},
		{SKU: "TABLET-001", Name: "iPad Pro 12.9", Brand: "Apple", Category: "Electrónica", Price: 1299, Quantity: 12, IsActive: true,
			Description: "Tablet con pantalla Liquid Retina XDR", ImageURL: "/tablet-pro.jpg"},
		{SKU: "CABLE-001", Name: "USB-C Braided Cable 3m", Brand: "Generic", Category: "Accesorios", Price: 29, Quantity: 50, IsActive: true,
			Description: "Cable USB-C de carga rápida y transmisión de datos", ImageURL: "/usb-cable.jpg"},
	}
}
