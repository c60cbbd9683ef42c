package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-scatter/pkg/core"
	"github.com/df07/go-scatter/pkg/geometry"
	"github.com/df07/go-scatter/pkg/material"
	"github.com/df07/go-scatter/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
	Camera       InspectCamera          `json:"camera"`
}

// InspectCamera describes the view the inspection ray was cast from
type InspectCamera struct {
	Position [3]float64 `json:"position"`
	LookAt   [3]float64 `json:"lookAt"`
	Forward  [3]float64 `json:"forward"`
	VFov     float64    `json:"vfov"`
}

// InspectResult is the first object hit by an inspection ray
type InspectResult struct {
	Hit          bool
	Intersection *geometry.Intersection
	Object       geometry.Hittable // The top-level object that was hit
}

// extractMaterialInfo describes a material and its parameters
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = describeTexture(m.Albedo)
	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	case *material.Isotropic:
		properties["albedo"] = describeTexture(m.Albedo)
	case *material.DiffuseLight:
		properties["emission"] = describeTexture(m.Emit)
	default:
		return "unknown", properties
	}
	return mat.Kind().String(), properties
}

// describeTexture summarises a texture for display
func describeTexture(tex material.Texture) map[string]interface{} {
	switch t := tex.(type) {
	case *material.SolidColor:
		return map[string]interface{}{
			"type":  "solid",
			"value": vecArray(t.Color),
			"color": hexColor(t.Color),
		}
	case *material.CheckerTexture:
		return map[string]interface{}{
			"type": "checker",
			"even": describeTexture(t.Even),
			"odd":  describeTexture(t.Odd),
		}
	case *material.ImageTexture:
		return map[string]interface{}{
			"type":   "image",
			"width":  t.Width,
			"height": t.Height,
		}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", tex)}
	}
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vecArray(geom.Corner)
		properties["u"] = vecArray(geom.U)
		properties["v"] = vecArray(geom.V)
		properties["normal"] = vecArray(geom.Normal)
		return "quad", properties

	case *geometry.Box:
		properties["center"] = vecArray(geom.Center)
		properties["halfExtents"] = vecArray(geom.Size)
		properties["rotateY"] = geom.RotateY
		return "box", properties

	case *geometry.ConstantMedium:
		boundaryType, boundaryProps := s.extractGeometryInfo(geom.Boundary)
		properties["density"] = geom.Density()
		properties["boundary"] = map[string]interface{}{
			"type":       boundaryType,
			"properties": boundaryProps,
		}
		return "constant_medium", properties

	default:
		return "unknown", properties
	}
}

// entrySampler makes a medium report its scattering point where the ray
// enters the boundary, so fog is visible to inspection
type entrySampler struct{}

func (entrySampler) Get1D() float64   { return 0 }
func (entrySampler) Get2D() core.Vec2 { return core.Vec2{} }
func (entrySampler) Get3D() core.Vec3 { return core.Vec3{} }

// inspectPixel casts a ray through the center of a pixel and returns the
// closest top-level object it hits
func inspectPixel(camera *renderer.Camera, world *geometry.HittableList, width, height, pixelX, pixelY int) InspectResult {
	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.GetRay(s, t)

	result := InspectResult{}
	closest := math.Inf(1)
	for _, object := range world.Objects {
		hit, ok := object.Hit(ray, 0.001, closest, entrySampler{})
		if !ok {
			continue
		}
		closest = hit.T
		result = InspectResult{Hit: true, Intersection: hit, Object: object}
	}
	return result
}

func describeCamera(camera *renderer.Camera) InspectCamera {
	config := camera.Config()
	return InspectCamera{
		Position: vecArray(config.Center),
		LookAt:   vecArray(config.LookAt),
		Forward:  vecArray(camera.GetCameraForward()),
		VFov:     config.VFov,
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	preview, err := s.setupPreview(req, logAdapter{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := renderer.NewCamera(preview.Camera)
	result := inspectPixel(camera, preview.World, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Camera: describeCamera(camera)})
		return
	}

	hit := result.Intersection
	materialType, materialProps := s.extractMaterialInfo(hit.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Object)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
		Camera: describeCamera(camera),
	})
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}
