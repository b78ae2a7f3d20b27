// internal/store/catalog/seed.go
package catalog

import "uniautomarket/internal/models"

// DefaultCategories returns the built-in tree used when the remote store
// has never been seeded. The nine fixed categories mirror the launch
// catalog of the marketplace; businesses are always added at runtime.
func DefaultCategories() models.Tree {
	return models.Tree{
		{
			ID:          "1",
			Name:        "Desarmadurías",
			Description: "Encuentra repuestos usados y piezas de vehículos desarmados",
			Image:       "https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?auto=format&fit=crop&w=800",
			Icon:        "Car",
			Color:       "#ef4444",
			Businesses:  []models.Business{},
		},
		{
			ID:          "2",
			Name:        "Talleres Mecánicos",
			Description: "Servicios de reparación y mantenimiento automotriz",
			Image:       "https://images.unsplash.com/photo-1619642751034-765dfdf7c58e?auto=format&fit=crop&w=800",
			Icon:        "Wrench",
			Color:       "#f97316",
			Businesses:  []models.Business{},
		},
		{
			ID:          "3",
			Name:        "Herramientas",
			Description: "Herramientas especializadas para mecánica automotriz",
			Image:       "https://images.unsplash.com/photo-1530124566582-a618bc2615dc?auto=format&fit=crop&w=800",
			Icon:        "Tool",
			Color:       "#eab308",
			Businesses:  []models.Business{},
		},
		{
			ID:          "4",
			Name:        "Repuestos",
			Description: "Repuestos nuevos para todo tipo de vehículos",
			Image:       "https://images.unsplash.com/photo-1487754180451-c456f719a1fc?auto=format&fit=crop&w=800",
			Icon:        "Package",
			Color:       "#22c55e",
			Businesses:  []models.Business{},
		},
		{
			ID:          "5",
			Name:        "Grúas",
			Description: "Servicios de grúas y asistencia en ruta",
			Image:       "https://images.unsplash.com/photo-1580674285054-bed31e145f59?auto=format&fit=crop&w=800",
			Icon:        "Truck",
			Color:       "#14b8a6",
			Businesses:  []models.Business{},
		},
		{
			ID:          "6",
			Name:        "Pintura y Desabolladura",
			Description: "Servicios de pintura y reparación de carrocería",
			Image:       "https://images.unsplash.com/photo-1613214149922-f1809c99b414?auto=format&fit=crop&w=800",
			Icon:        "Paintbrush",
			Color:       "#3b82f6",
			Businesses:  []models.Business{},
		},
		{
			ID:          "7",
			Name:        "Scanner y Diagnóstico",
			Description: "Diagnóstico computacional de vehículos",
			Image:       "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?auto=format&fit=crop&w=800",
			Icon:        "Cpu",
			Color:       "#8b5cf6",
			Businesses:  []models.Business{},
		},
		{
			ID:          "8",
			Name:        "Electrónica Automotriz",
			Description: "Reparación de sistemas electrónicos de vehículos",
			Image:       "https://images.unsplash.com/photo-1494976388531-d1058494cdd8?auto=format&fit=crop&w=800",
			Icon:        "Zap",
			Color:       "#ec4899",
			Businesses:  []models.Business{},
		},
		{
			ID:          "9",
			Name:        "Reprogramación ECU",
			Description: "Servicios de reprogramación de centralitas",
			Image:       "https://images.unsplash.com/photo-1449965408869-eaa3f722e40d?auto=format&fit=crop&w=800",
			Icon:        "Settings",
			Color:       "#64748b",
			Businesses:  []models.Business{},
		},
	}
}
