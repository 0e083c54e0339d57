package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/df07/go-matcap-loop/pkg/material"
	"github.com/df07/go-matcap-loop/pkg/renderer"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	Group        int                    `json:"group"` // -1 when the mesh is outside the loop groups
	Mesh         int                    `json:"mesh"`  // 0 is the center box, 1-4 are satellites
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point,omitempty"`
	Normal       [3]float64             `json:"normal,omitempty"`
	Distance     float64                `json:"distance,omitempty"`
	FrontFace    bool                   `json:"frontFace,omitempty"`
	Color        [3]float64             `json:"color,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo extracts material parameters with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Matcap:
		properties["color"] = [3]float64{m.Color.X, m.Color.Y, m.Color.Z}
		properties["metalness"] = m.Metalness
		properties["roughness"] = m.Roughness
		if texture, ok := m.Texture.(*material.ImageTexture); ok {
			properties["matcapWidth"] = texture.Width
			properties["matcapHeight"] = texture.Height
		}
		return "matcap", properties
	case *material.Standard:
		properties["color"] = [3]float64{m.Color.X, m.Color.Y, m.Color.Z}
		properties["metalness"] = m.Metalness
		properties["roughness"] = m.Roughness
		return "standard", properties
	default:
		return "unknown", properties
	}
}

// handleInspect casts a ray through pixel (x, y) of the frame at ?t=<seconds>.
// Groups are posed without jitter or drift so inspecting never disturbs the
// streamed frames.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	values := r.URL.Query()
	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= s.cfg.Width || pixelY < 0 || pixelY >= s.cfg.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	elapsed, err := parseElapsed(values, s.Elapsed())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.loop.Controller.PoseGroups(elapsed)
	result := renderer.Inspect(s.loop.Scene, s.loop.Camera, pixelX, pixelY)
	s.mu.Unlock()

	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Group: -1, Mesh: -1})
		return
	}

	materialType, properties := extractMaterialInfo(result.Material)
	response := InspectResponse{
		Hit:          true,
		Group:        result.Group,
		Mesh:         result.Mesh,
		MaterialType: materialType,
		Point:        [3]float64{result.Point.X, result.Point.Y, result.Point.Z},
		Normal:       [3]float64{result.Normal.X, result.Normal.Y, result.Normal.Z},
		Distance:     result.Distance,
		FrontFace:    result.FrontFace,
		Color:        [3]float64{result.Color.X, result.Color.Y, result.Color.Z},
		Properties:   properties,
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
