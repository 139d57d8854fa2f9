package webapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/opsledger/webapi"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/amirasaad/opsledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type FlowTestSuite struct {
	suite.Suite
	app   *fiber.App
	token string
}

func TestFlowTestSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func (s *FlowTestSuite) SetupTest() {
	cfg := testutils.Config()
	cfg.Auth.JwtSecret = testutils.TestSecret
	s.app = webapi.SetupApp(testutils.NewApp(s.T(), cfg))
	s.token = testutils.Token(s.T(), testutils.TestSecret, "accountant")
}

func (s *FlowTestSuite) do(method, path, body string) (int, any) {
	resp := testutils.MakeRequest(s.T(), s.app, method, path, body, s.token)
	defer resp.Body.Close() //nolint: errcheck
	var out webcommon.Response
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out.Data
}

func (s *FlowTestSuite) TestHealthAndRoutes() {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/", "", "")
	_ = resp.Body.Close()
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/debug/routes", "", "")
	defer resp.Body.Close() //nolint: errcheck
	var routes []map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&routes))
	paths := make(map[string]bool, len(routes))
	for _, r := range routes {
		paths[fmt.Sprint(r["method"], " ", r["path"])] = true
	}
	s.True(paths["POST /transfers"])
	s.True(paths["GET /clients/overdue"])
	s.True(paths["GET /categories/:id/transactions/stream"])
}

func (s *FlowTestSuite) TestClientLifecycle() {
	status, data := s.do(http.MethodPost, "/clients", `{"lastName":"Ivanov","firstName":"Petr","totalAmount":100000}`)
	s.Require().Equal(fiber.StatusCreated, status)
	created := data.(map[string]any)
	clientID := created["client"].(map[string]any)["id"].(string)
	personID := created["personId"].(string)
	projectID := created["projectId"].(string)

	status, _ = s.do(http.MethodPost, "/transfers",
		fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":25000,"description":"advance"}`, personID, projectID))
	s.Require().Equal(fiber.StatusCreated, status)

	status, data = s.do(http.MethodGet, "/categories/"+personID, "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("-25000 ₸", data.(map[string]any)["amount"])

	status, _ = s.do(http.MethodPatch, "/clients/"+clientID+"/status", `{"status":"built"}`)
	s.Require().Equal(fiber.StatusOK, status)
	status, data = s.do(http.MethodGet, "/categories/"+projectID, "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("built", data.(map[string]any)["status"])

	status, data = s.do(http.MethodDelete, "/clients/"+clientID, "")
	s.Require().Equal(fiber.StatusOK, status)
	s.EqualValues(2, data.(map[string]any)["removedTransactions"])

	status, data = s.do(http.MethodGet, "/categories/"+personID+"/transactions", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Empty(data)

	status, data = s.do(http.MethodGet, "/system-balance", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("25000 ₸", data.(map[string]any)["amount"])
}

func (s *FlowTestSuite) TestUnknownRoute() {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/nope", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}
