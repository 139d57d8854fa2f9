package client_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amirasaad/opsledger/pkg/app"
	webclient "github.com/amirasaad/opsledger/webapi/client"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/amirasaad/opsledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

const ivanov = `{
	"lastName": "Ivanov",
	"firstName": "Petr",
	"phone": "+7 701 000 00 00",
	"iin": "900101300123",
	"constructionDays": 90,
	"totalAmount": 1000000,
	"deposit": 100000,
	"firstPayment": 300000,
	"year": 2024
}`

type ClientTestSuite struct {
	suite.Suite
	app  *fiber.App
	deps *app.App
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	cfg := testutils.Config()
	s.deps = testutils.NewApp(s.T(), cfg)
	s.app = fiber.New()
	webclient.Routes(s.app, s.deps.ClientService, s.deps.LedgerService.Codec(), cfg)
}

func (s *ClientTestSuite) request(method, path, body string) (int, map[string]any) {
	resp := testutils.MakeRequest(s.T(), s.app, method, path, body, "")
	defer resp.Body.Close() //nolint: errcheck
	var out webcommon.Response
	_ = json.NewDecoder(resp.Body).Decode(&out)
	data, _ := out.Data.(map[string]any)
	return resp.StatusCode, data
}

func (s *ClientTestSuite) create() (id, personID, projectID string) {
	status, data := s.request(http.MethodPost, "/clients", ivanov)
	s.Require().Equal(fiber.StatusCreated, status)
	cl := data["client"].(map[string]any)
	return cl["id"].(string), data["personId"].(string), data["projectId"].(string)
}

func (s *ClientTestSuite) TestCreateClient() {
	status, data := s.request(http.MethodPost, "/clients", ivanov)
	s.Require().Equal(fiber.StatusCreated, status)
	cl := data["client"].(map[string]any)
	s.Equal("2024-001", cl["clientNumber"])
	s.Equal("Ivanov Petr", cl["fullName"])
	s.Equal("deposit", cl["status"])
	s.NotEmpty(data["personId"])
	s.NotEmpty(data["projectId"])
}

func (s *ClientTestSuite) TestCreateClient_Validation() {
	s.Run("missing name", func() {
		status, _ := s.request(http.MethodPost, "/clients", `{"lastName":"Ivanov"}`)
		s.Equal(fiber.StatusBadRequest, status)
	})
	s.Run("negative amount", func() {
		status, _ := s.request(http.MethodPost, "/clients", `{"lastName":"Ivanov","firstName":"Petr","deposit":-1}`)
		s.Equal(fiber.StatusBadRequest, status)
	})
	s.Run("unknown status", func() {
		status, _ := s.request(http.MethodPost, "/clients", `{"lastName":"Ivanov","firstName":"Petr","status":"paused"}`)
		s.Equal(fiber.StatusBadRequest, status)
	})
}

func (s *ClientTestSuite) TestSetStatus_Cascades() {
	id, personID, projectID := s.create()

	status, data := s.request(http.MethodPatch, "/clients/"+id+"/status", `{"status":"building"}`)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("building", data["status"])
	s.ElementsMatch([]any{personID, projectID}, data["categoryIds"])

	status, _ = s.request(http.MethodPatch, "/clients/"+id+"/status", `{"status":"paused"}`)
	s.Equal(fiber.StatusBadRequest, status)
}

func (s *ClientTestSuite) TestSetVisibility() {
	id, _, _ := s.create()

	status, data := s.request(http.MethodPatch, "/clients/"+id+"/visibility", `{"isVisible":false}`)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal(false, data["isVisible"])

	status, data = s.request(http.MethodPatch, "/clients/"+id+"/visibility", `{}`)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal(true, data["isVisible"])
}

func (s *ClientTestSuite) TestGetUpdateAndProgress() {
	id, _, _ := s.create()

	status, data := s.request(http.MethodGet, "/clients/"+id, "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("2024-001", data["clientNumber"])

	status, data = s.request(http.MethodGet, "/clients/"+id+"/progress", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.InDelta(40.0, data["percent"], 0.001)
	s.Equal("400000 ₸", data["totalPaid"])

	status, data = s.request(http.MethodPatch, "/clients/"+id,
		`{"lastName":"Petrov","firstName":"Ivan","totalAmount":1000000,"year":2024}`)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("Petrov Ivan", data["fullName"])

	status, _ = s.request(http.MethodGet, "/clients/not-a-uuid", "")
	s.Equal(fiber.StatusBadRequest, status)
	status, _ = s.request(http.MethodGet, "/clients/5b0f7c52-0d1e-4a53-8f3b-7c2f7d0e9a11", "")
	s.Equal(fiber.StatusNotFound, status)
}

func (s *ClientTestSuite) TestListClients() {
	s.create()
	s.create()

	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/clients?year=2024", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out webcommon.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	s.Len(out.Data, 2)

	status, _ := s.request(http.MethodGet, "/clients?status=paused", "")
	s.Equal(fiber.StatusBadRequest, status)

	status, _ = s.request(http.MethodGet, "/clients/overdue", "")
	s.Equal(fiber.StatusOK, status)
}

func (s *ClientTestSuite) TestDeleteClient() {
	id, _, _ := s.create()

	status, data := s.request(http.MethodDelete, "/clients/"+id+"?history=false", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Len(data["categoryIds"], 2)
	s.EqualValues(0, data["removedTransactions"])

	status, _ = s.request(http.MethodDelete, "/clients/"+id, "")
	s.Equal(fiber.StatusNotFound, status)
}

func (s *ClientTestSuite) list(path string) []map[string]any {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, path, "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out struct {
		Data []map[string]any `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out.Data
}

func (s *ClientTestSuite) TestListClients_Search() {
	s.create()
	status, _ := s.request(http.MethodPost, "/clients",
		`{"lastName":"Sidorova","firstName":"Anna","objectName":"Cottage on Abay","email":"anna@example.kz","year":2024}`)
	s.Require().Equal(fiber.StatusCreated, status)

	found := s.list("/clients?q=cottage%20ANNA")
	s.Require().Len(found, 1)
	s.Equal("Sidorova", found[0]["lastName"])

	s.Len(s.list("/clients?q=2024-00"), 2)
	s.Len(s.list("/clients?q=701"), 1)
	s.Empty(s.list("/clients?q=ivanov%20cottage"))
	s.Len(s.list("/clients?q=%20%20"), 2)
}

func (s *ClientTestSuite) TestClientHistory() {
	const key = "history-secret"
	cfg := testutils.Config()
	cfg.Auth.JwtSecret = key
	deps := testutils.NewApp(s.T(), cfg)
	app := fiber.New()
	webclient.Routes(app, deps.ClientService, deps.LedgerService.Codec(), cfg)
	token := testutils.Token(s.T(), key, "foreman")

	call := func(method, path, body string) (int, any) {
		resp := testutils.MakeRequest(s.T(), app, method, path, body, token)
		defer resp.Body.Close() //nolint: errcheck
		var out webcommon.Response
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out.Data
	}

	status, data := call(http.MethodPost, "/clients", ivanov)
	s.Require().Equal(fiber.StatusCreated, status)
	id := data.(map[string]any)["client"].(map[string]any)["id"].(string)

	status, _ = call(http.MethodPatch, "/clients/"+id,
		`{"lastName":"Petrov","firstName":"Petr","totalAmount":1000000,"deposit":100000,"firstPayment":300000,"constructionDays":90,"phone":"+7 701 000 00 00","iin":"900101300123","year":2024}`)
	s.Require().Equal(fiber.StatusOK, status)
	status, _ = call(http.MethodPatch, "/clients/"+id+"/status", `{"status":"building"}`)
	s.Require().Equal(fiber.StatusOK, status)

	status, data = call(http.MethodGet, "/clients/"+id+"/history", "")
	s.Require().Equal(fiber.StatusOK, status)
	entries := data.([]any)
	s.Require().Len(entries, 3)
	latest := entries[0].(map[string]any)
	s.Equal("status_changed", latest["action"])
	s.Equal("foreman", latest["operator"])
	s.Equal(id, latest["clientId"])
	edit := entries[1].(map[string]any)
	s.Equal("updated", edit["action"])
	s.Equal(map[string]any{"lastName": map[string]any{"from": "Ivanov", "to": "Petrov"}}, edit["changes"])
	s.Equal("created", entries[2].(map[string]any)["action"])

	status, data = call(http.MethodGet, "/clients/"+id+"/history?limit=1&offset=2", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Len(data, 1)

	status, _ = call(http.MethodGet, "/clients/"+id+"/history?limit=-1", "")
	s.Equal(fiber.StatusBadRequest, status)
	status, _ = call(http.MethodGet, "/clients/not-a-uuid/history", "")
	s.Equal(fiber.StatusBadRequest, status)

	resp := testutils.MakeRequest(s.T(), app, http.MethodGet, "/clients/"+id+"/history", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.NotEqual(fiber.StatusOK, resp.StatusCode)
}
