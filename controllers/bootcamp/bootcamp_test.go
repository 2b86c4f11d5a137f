package bootcampController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"devcamper/config"
	"devcamper/database"
	"devcamper/middleware"
	"devcamper/models"
	bootcampRoutes "devcamper/routers/bootcampRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.LoadConfig()
	config.AppConfig.FileUploadPath = t.TempDir()

	// stub geocoder answering with downtown Boston
	geoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "42.3601", "lon": "-71.0589"}]`))
	}))
	t.Cleanup(geoServer.Close)
	config.AppConfig.GeocoderURL = geoServer.URL

	db, err := database.ConnectTestDb()
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	api := app.Group("/api/v1")
	bootcampRoutes.SetupBootcampRoutes(api)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Role: role, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID)
	require.NoError(t, err)
	return user, token
}

func seedBootcamp(t *testing.T, db *gorm.DB, name string, ownerID uint, lat, lon float64) models.Bootcamp {
	t.Helper()

	bootcamp := models.Bootcamp{
		Name:        name,
		Description: "Description",
		Address:     "Somewhere",
		Latitude:    lat,
		Longitude:   lon,
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(&bootcamp).Error)
	return bootcamp
}

func jsonRequest(t *testing.T, method, path, token string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))

	return resp.StatusCode, out
}

func TestCreateBootcamp(t *testing.T) {
	app, db := setupApp(t)
	user, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"name":        "Devworks Bootcamp",
		"description": "Full stack web development",
		"address":     "233 Bay State Rd Boston MA 02215",
		"website":     "https://devworks.com",
		"careers":     []string{"Web Development", "UI/UX"},
		"housing":     true,
	}))
	require.Equal(t, http.StatusCreated, status)

	data := out["data"].(map[string]interface{})
	require.Equal(t, "Devworks Bootcamp", data["name"])
	require.Equal(t, float64(user.ID), data["user"])
	require.Equal(t, "no-photo.jpg", data["photo"])
	// location resolved through the geocoder
	require.InDelta(t, 42.3601, data["latitude"].(float64), 0.0001)
	require.InDelta(t, -71.0589, data["longitude"].(float64), 0.0001)
}

func TestCreateBootcampValidation(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"website": "devworks.com",
	}))
	require.Equal(t, http.StatusBadRequest, status)

	messages := out["error"].([]interface{})
	require.Contains(t, messages, "Please add a name")
	require.Contains(t, messages, "Please add a description")
	require.Contains(t, messages, "Please add an address")
	require.Contains(t, messages, "Please use a valid URL with HTTP or HTTPS")
}

func TestCreateBootcampRequiresPublisher(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "plain@gmail.com", models.RoleUser)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"name":        "Devworks Bootcamp",
		"description": "Full stack web development",
		"address":     "Boston",
	}))
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, "User role user is not authorized to access this route", out["error"])
}

func TestCreateBootcampOnePerPublisher(t *testing.T) {
	app, db := setupApp(t)
	user, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	seedBootcamp(t, db, "First Bootcamp", user.ID, 0, 0)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"name":        "Second Bootcamp",
		"description": "Another one",
		"address":     "Boston",
	}))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, fmt.Sprintf("The user with ID %d has already published a bootcamp", user.ID), out["error"])
}

func TestAdminCanPublishSeveralBootcamps(t *testing.T) {
	app, db := setupApp(t)
	admin, token := createUser(t, db, "admin@gmail.com", models.RoleAdmin)
	seedBootcamp(t, db, "First Bootcamp", admin.ID, 0, 0)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"name":        "Second Bootcamp",
		"description": "Another one",
		"address":     "Boston",
	}))
	require.Equal(t, http.StatusCreated, status)
}

func TestGetBootcamp(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), "", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Devworks Bootcamp", out["data"].(map[string]interface{})["name"])
}

func TestGetBootcampNotFound(t *testing.T) {
	app, _ := setupApp(t)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/v1/bootcamps/9999", "", nil))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Bootcamp not found with id 9999", out["error"])
}

func TestGetBootcampBadId(t *testing.T) {
	app, _ := setupApp(t)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/v1/bootcamps/abc", "", nil))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Resource not found", out["error"])
}

func TestUpdateBootcamp(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), token, fiber.Map{
		"name":    "Devworks Renamed",
		"housing": true,
	}))
	require.Equal(t, http.StatusOK, status)

	data := out["data"].(map[string]interface{})
	require.Equal(t, "Devworks Renamed", data["name"])
	require.Equal(t, true, data["housing"])
	// untouched fields survive a partial update
	require.Equal(t, "Description", data["description"])
}

func TestUpdateBootcampNotOwner(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := createUser(t, db, "owner@gmail.com", models.RolePublisher)
	intruder, token := createUser(t, db, "intruder@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), token, fiber.Map{
		"name": "Hijacked",
	}))
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, fmt.Sprintf("User %d is not authorized to update this bootcamp", intruder.ID), out["error"])
}

func TestUpdateBootcampAsAdmin(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := createUser(t, db, "owner@gmail.com", models.RolePublisher)
	_, token := createUser(t, db, "admin@gmail.com", models.RoleAdmin)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), token, fiber.Map{
		"name": "Renamed by admin",
	}))
	require.Equal(t, http.StatusOK, status)
}

func TestDeleteBootcampCascades(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	course := models.Course{Title: "Course", Description: "D", Weeks: "8", Tuition: 100,
		MinimumSkill: models.SkillBeginner, BootcampID: bootcamp.ID, UserID: owner.ID}
	require.NoError(t, db.Create(&course).Error)
	review := models.Review{Title: "Review", Text: "T", Rating: 8, BootcampID: bootcamp.ID, UserID: owner.ID}
	require.NoError(t, db.Create(&review).Error)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), token, nil))
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.Course{}).Where("bootcamp_id = ?", bootcamp.ID).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, db.Model(&models.Review{}).Where("bootcamp_id = ?", bootcamp.ID).Count(&count).Error)
	require.Zero(t, count)

	status, _ = doJSON(t, app, jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), "", nil))
	require.Equal(t, http.StatusNotFound, status)
}

func TestGetBootcampsInRadius(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := createUser(t, db, "publisher@gmail.com", models.RolePublisher)

	// the stub geocoder resolves any zipcode to downtown Boston
	seedBootcamp(t, db, "Boston Bootcamp", owner.ID, 42.3601, -71.0589)
	seedBootcamp(t, db, "New York Bootcamp", owner.ID, 40.7128, -74.0060)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/v1/bootcamps/radius/02108/50", "", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), out["count"])
	data := out["data"].([]interface{})
	require.Equal(t, "Boston Bootcamp", data[0].(map[string]interface{})["name"])

	status, out = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/v1/bootcamps/radius/02108/500", "", nil))
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(2), out["count"])
}

func TestGetBootcampsInRadiusGeocodeFailure(t *testing.T) {
	app, _ := setupApp(t)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()
	config.AppConfig.GeocoderURL = failing.URL

	status, out := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/v1/bootcamps/radius/02108/50", "", nil))
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "Unable to geocode the zipcode", out["error"])
}

func photoRequest(t *testing.T, path, token, filename, contentType string, payload []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadBootcampPhoto(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	path := fmt.Sprintf("/api/v1/bootcamps/%d/photo", bootcamp.ID)
	req := photoRequest(t, path, token, "campus.jpg", "image/jpeg", []byte("fake image bytes"))

	status, out := doJSON(t, app, req)
	require.Equal(t, http.StatusOK, status)

	wantName := fmt.Sprintf("photo_%d.jpg", bootcamp.ID)
	require.Equal(t, wantName, out["data"])

	_, err := os.Stat(filepath.Join(config.AppConfig.FileUploadPath, wantName))
	require.NoError(t, err)

	require.NoError(t, db.First(&bootcamp, bootcamp.ID).Error)
	require.Equal(t, wantName, bootcamp.Photo)
}

func TestUploadBootcampPhotoRejectsNonImage(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	path := fmt.Sprintf("/api/v1/bootcamps/%d/photo", bootcamp.ID)
	req := photoRequest(t, path, token, "notes.txt", "text/plain", []byte("not an image"))

	status, out := doJSON(t, app, req)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Please upload a valid image file", out["error"])
}

func TestUploadBootcampPhotoRejectsOversize(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	config.AppConfig.MaxFileUpload = 8

	path := fmt.Sprintf("/api/v1/bootcamps/%d/photo", bootcamp.ID)
	req := photoRequest(t, path, token, "campus.jpg", "image/jpeg", []byte("way more than eight bytes"))

	status, out := doJSON(t, app, req)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Please upload an image having size less than 8 bytes", out["error"])
}

func TestUploadBootcampPhotoMissingFile(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/bootcamps/%d/photo", bootcamp.ID), token, nil))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Please upload a file", out["error"])
}

func TestJoinBootcamp(t *testing.T) {
	app, db := setupApp(t)
	owner, _ := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	member, token := createUser(t, db, "member@gmail.com", models.RoleUser)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	path := fmt.Sprintf("/api/v1/bootcamps/%d/join", bootcamp.ID)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodPut, path, token, nil))
	require.Equal(t, http.StatusOK, status)

	var joined int64
	require.NoError(t, db.Table("bootcamp_members").
		Where("bootcamp_id = ? AND user_id = ?", bootcamp.ID, member.ID).
		Count(&joined).Error)
	require.Equal(t, int64(1), joined)

	// joining twice is rejected
	status, out := doJSON(t, app, jsonRequest(t, http.MethodPut, path, token, nil))
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, fmt.Sprintf("User %d has already joined bootcamp %d", member.ID, bootcamp.ID), out["error"])
}

func TestJoinBootcampPublisherForbidden(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodPut, fmt.Sprintf("/api/v1/bootcamps/%d/join", bootcamp.ID), token, nil))
	require.Equal(t, http.StatusForbidden, status)
}

func TestJoinMissingBootcamp(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "member@gmail.com", models.RoleUser)

	status, out := doJSON(t, app, jsonRequest(t, http.MethodPut, "/api/v1/bootcamps/9999/join", token, nil))
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "No bootcamp with the id of 9999", out["error"])
}

func TestDeleteBootcampFreesNameAndPublisher(t *testing.T) {
	app, db := setupApp(t)
	owner, token := createUser(t, db, "publisher@gmail.com", models.RolePublisher)
	_, memberToken := createUser(t, db, "member@gmail.com", models.RoleUser)
	bootcamp := seedBootcamp(t, db, "Devworks Bootcamp", owner.ID, 0, 0)

	status, _ := doJSON(t, app, jsonRequest(t, http.MethodPut,
		fmt.Sprintf("/api/v1/bootcamps/%d/join", bootcamp.ID), memberToken, nil))
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, jsonRequest(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/bootcamps/%d", bootcamp.ID), token, nil))
	require.Equal(t, http.StatusOK, status)

	var joined int64
	require.NoError(t, db.Table("bootcamp_members").
		Where("bootcamp_id = ?", bootcamp.ID).Count(&joined).Error)
	require.Zero(t, joined)

	// the delete is a hard delete: the name is free again and the
	// publisher may publish a new bootcamp
	status, out := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/v1/bootcamps", token, fiber.Map{
		"name":        "Devworks Bootcamp",
		"description": "Back again",
		"address":     "Boston",
	}))
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, float64(owner.ID), out["data"].(map[string]interface{})["user"])
}
