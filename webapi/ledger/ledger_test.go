package ledger_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/opsledger/pkg/app"
	"github.com/amirasaad/opsledger/pkg/config"
	webcommon "github.com/amirasaad/opsledger/webapi/common"
	"github.com/amirasaad/opsledger/webapi/ledger"
	"github.com/amirasaad/opsledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	app   *fiber.App
	deps  *app.App
	cfg   *config.App
	token string
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.cfg = testutils.Config()
	s.cfg.Auth.JwtSecret = testutils.TestSecret
	s.deps = testutils.NewApp(s.T(), s.cfg)
	s.app = fiber.New()
	ledger.Routes(s.app, s.deps.LedgerService, s.deps.CategoryService, s.deps.ClientService, s.deps.Idempotency, s.cfg)
	s.token = testutils.Token(s.T(), testutils.TestSecret, "foreman")
}

func (s *LedgerTestSuite) request(method, path, body string) (int, webcommon.Response) {
	resp := testutils.MakeRequest(s.T(), s.app, method, path, body, s.token)
	defer resp.Body.Close() //nolint: errcheck
	var out webcommon.Response
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (s *LedgerTestSuite) createCategory(title string, row int) string {
	status, resp := s.request(http.MethodPost, "/categories", fmt.Sprintf(`{"title":%q,"row":%d}`, title, row))
	s.Require().Equal(fiber.StatusCreated, status)
	return resp.Data.(map[string]any)["id"].(string)
}

func (s *LedgerTestSuite) TestRequiresToken() {
	resp := testutils.MakeRequest(s.T(), s.app, http.MethodGet, "/system-balance", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *LedgerTestSuite) TestTransfer() {
	person := s.createCategory("Ivanov Petr", 1)
	project := s.createCategory("Warehouse", 4)

	status, resp := s.request(http.MethodPost, "/transfers",
		fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":250.5,"description":"advance"}`, person, project))
	s.Require().Equal(fiber.StatusCreated, status)
	data := resp.Data.(map[string]any)
	s.Equal("-250.5 ₸", data["source"].(map[string]any)["amount"])
	s.Equal("250.5 ₸", data["target"].(map[string]any)["amount"])
	s.Len(data["transactions"], 3)

	status, resp = s.request(http.MethodGet, "/categories/"+project+"/balance", "")
	s.Equal(fiber.StatusOK, status)
	s.Equal("250.5 ₸", resp.Data.(map[string]any)["amount"])

	status, resp = s.request(http.MethodGet, "/system-balance", "")
	s.Equal(fiber.StatusOK, status)
	s.InDelta(250.5, resp.Data.(map[string]any)["balance"], 0.001)

	status, resp = s.request(http.MethodGet, "/categories/"+person+"/reconcile", "")
	s.Equal(fiber.StatusOK, status)
	s.Equal(true, resp.Data.(map[string]any)["consistent"])
}

func (s *LedgerTestSuite) TestTransfer_Validation() {
	person := s.createCategory("Ivanov Petr", 1)
	project := s.createCategory("Warehouse", 4)

	s.Run("missing fields", func() {
		status, _ := s.request(http.MethodPost, "/transfers", `{"amount":10}`)
		s.Equal(fiber.StatusBadRequest, status)
	})
	s.Run("non-positive amount", func() {
		status, _ := s.request(http.MethodPost, "/transfers",
			fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":-5,"description":"x"}`, person, project))
		s.Equal(fiber.StatusBadRequest, status)
	})
	s.Run("amount finer than the minor unit", func() {
		status, _ := s.request(http.MethodPost, "/transfers",
			fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":0.005,"description":"x"}`, person, project))
		s.Equal(fiber.StatusBadRequest, status)

		status, resp := s.request(http.MethodGet, "/categories/"+project+"/balance", "")
		s.Require().Equal(fiber.StatusOK, status)
		s.Equal("0 ₸", resp.Data.(map[string]any)["amount"])
	})
	s.Run("self transfer", func() {
		status, _ := s.request(http.MethodPost, "/transfers",
			fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":5,"description":"x"}`, person, person))
		s.Equal(fiber.StatusBadRequest, status)
	})
	s.Run("unknown account", func() {
		status, _ := s.request(http.MethodPost, "/transfers",
			fmt.Sprintf(`{"sourceId":%q,"targetId":"5b0f7c52-0d1e-4a53-8f3b-7c2f7d0e9a11","amount":5,"description":"x"}`, person))
		s.Equal(fiber.StatusNotFound, status)
	})
}

func (s *LedgerTestSuite) TestHistory() {
	person := s.createCategory("Ivanov Petr", 1)
	project := s.createCategory("Warehouse", 4)
	for i := 1; i <= 3; i++ {
		status, _ := s.request(http.MethodPost, "/transfers",
			fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":%d,"description":"payment %d"}`, person, project, i, i))
		s.Require().Equal(fiber.StatusCreated, status)
	}

	status, resp := s.request(http.MethodGet, "/categories/"+project+"/transactions?limit=2", "")
	s.Require().Equal(fiber.StatusOK, status)
	txs := resp.Data.([]any)
	s.Require().Len(txs, 2)
	s.Equal("payment 3", txs[0].(map[string]any)["description"])

	status, resp = s.request(http.MethodGet, "/categories/system_balance/transactions", "")
	s.Equal(fiber.StatusOK, status)
	s.Len(resp.Data.([]any), 3)

	status, _ = s.request(http.MethodGet, "/categories/"+project+"/transactions?offset=-1", "")
	s.Equal(fiber.StatusBadRequest, status)
}

func (s *LedgerTestSuite) TestCategories() {
	s.createCategory("Ivanov Petr", 1)
	warehouse := s.createCategory("Warehouse", 4)

	status, resp := s.request(http.MethodGet, "/categories?row=4", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Len(resp.Data.([]any), 1)

	status, _ = s.request(http.MethodGet, "/categories?row=9", "")
	s.Equal(fiber.StatusBadRequest, status)

	status, resp = s.request(http.MethodPatch, "/categories/"+warehouse+"/visibility", `{"isVisible":false}`)
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal(false, resp.Data.(map[string]any)["isVisible"])

	status, resp = s.request(http.MethodGet, "/categories?visible=true", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Len(resp.Data.([]any), 1)

	status, _ = s.request(http.MethodGet, "/categories/not-a-uuid", "")
	s.Equal(fiber.StatusBadRequest, status)
	status, _ = s.request(http.MethodGet, "/categories/5b0f7c52-0d1e-4a53-8f3b-7c2f7d0e9a11", "")
	s.Equal(fiber.StatusNotFound, status)
}

func (s *LedgerTestSuite) TestTransfer_IdempotencyKey() {
	s.assertTransferReplayed()
}

func (s *LedgerTestSuite) TestTransfer_IdempotencyKeyWithoutTTL() {
	s.cfg.Ledger.IdempotencyTTL = 0
	s.deps = testutils.NewApp(s.T(), s.cfg)
	s.app = fiber.New()
	ledger.Routes(s.app, s.deps.LedgerService, s.deps.CategoryService, s.deps.ClientService, s.deps.Idempotency, s.cfg)
	s.assertTransferReplayed()
}

func (s *LedgerTestSuite) assertTransferReplayed() {
	person := s.createCategory("Ivanov Petr", 1)
	project := s.createCategory("Warehouse", 4)
	body := fmt.Sprintf(`{"sourceId":%q,"targetId":%q,"amount":100,"description":"advance"}`, person, project)

	send := func() *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.token)
		req.Header.Set(ledger.HeaderIdempotencyKey, "invoice-17")
		resp, err := s.app.Test(req, -1)
		s.Require().NoError(err)
		return resp
	}

	first := send()
	_ = first.Body.Close()
	s.Require().Equal(fiber.StatusCreated, first.StatusCode)
	s.Empty(first.Header.Get(ledger.HeaderIdempotentReplayed))

	second := send()
	_ = second.Body.Close()
	s.Equal(fiber.StatusCreated, second.StatusCode)
	s.Equal("true", second.Header.Get(ledger.HeaderIdempotentReplayed))

	status, resp := s.request(http.MethodGet, "/categories/"+project+"/balance", "")
	s.Require().Equal(fiber.StatusOK, status)
	s.Equal("100 ₸", resp.Data.(map[string]any)["amount"])
}
