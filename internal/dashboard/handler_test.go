package dashboard_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ErdhyErnando/moneta/internal/auth"
	categoryDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/category"
	recordDatamodel "github.com/ErdhyErnando/moneta/internal/core/datamodel/record"
	"github.com/ErdhyErnando/moneta/internal/dashboard"
	dashboardPostgres "github.com/ErdhyErnando/moneta/internal/dashboard/postgres"
	"github.com/ErdhyErnando/moneta/internal/record"
)

var _ = Describe("Dashboard Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *dashboard.Handler
		user    *auth.User
	)

	request := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		return req.WithContext(auth.ContextWithUser(req.Context(), user))
	}

	insert := func(kind record.Kind, categoryID int64, amount string, date time.Time) {
		now := time.Now()
		rec := &recordDatamodel.Record{
			Amount:     decimal.RequireFromString(amount),
			Date:       date,
			UserID:     user.ID,
			CategoryID: categoryID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		Expect(db.Table(kind.Table()).Create(rec).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())
		for _, kind := range []record.Kind{record.KindIncome, record.KindExpense, record.KindStartingBalance} {
			err = db.Table(kind.Table()).AutoMigrate(&recordDatamodel.Record{})
			Expect(err).NotTo(HaveOccurred())
		}

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := dashboardPostgres.NewDashboardRepository(db)
		service := dashboard.NewService(repo, slogger)
		handler = dashboard.NewHandler(service)

		user = &auth.User{ID: 1, Email: "demo@moneta.dev", Name: "Demo User", IsActive: true}

		salary := &categoryDatamodel.Category{Name: "Salary", Type: categoryDatamodel.TypeIncome}
		rent := &categoryDatamodel.Category{Name: "Rent", Type: categoryDatamodel.TypeExpense}
		Expect(db.Create(salary).Error).To(Succeed())
		Expect(db.Create(rent).Error).To(Succeed())

		insert(record.KindIncome, salary.ID, "1000.00", time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC))
		insert(record.KindExpense, rent.ID, "700.00", time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC))
	})

	Describe("GET /dashboard/summary", func() {
		It("should return the summary under its data key", func() {
			w := httptest.NewRecorder()

			handler.GetSummary(w, request("/dashboard/summary"))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response struct {
				Summary dashboard.Summary `json:"summary"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Summary.TotalIncome.Equal(decimal.RequireFromString("1000.00"))).To(BeTrue())
			Expect(response.Summary.NetBalance.Equal(decimal.RequireFromString("300.00"))).To(BeTrue())
		})

		It("should reject a malformed startDate", func() {
			w := httptest.NewRecorder()

			handler.GetSummary(w, request("/dashboard/summary?startDate=bogus"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should require an authenticated user", func() {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)

			handler.GetSummary(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /dashboard/transactions", func() {
		It("should return the merged feed", func() {
			w := httptest.NewRecorder()

			handler.GetTransactions(w, request("/dashboard/transactions"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Transactions []dashboard.Transaction `json:"transactions"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Transactions).To(HaveLen(2))
			Expect(response.Transactions[0].Type).To(Equal("income"))
			Expect(response.Transactions[1].Type).To(Equal("expense"))
		})

		It("should reject a non-positive limit", func() {
			w := httptest.NewRecorder()

			handler.GetTransactions(w, request("/dashboard/transactions?limit=0"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /dashboard/chart", func() {
		It("should return one point per active day", func() {
			w := httptest.NewRecorder()

			handler.GetChart(w, request("/dashboard/chart"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				ChartData []dashboard.ChartPoint `json:"chartData"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.ChartData).To(HaveLen(2))
			Expect(response.ChartData[0].Date).To(Equal("2025-02-01"))
			Expect(response.ChartData[1].Date).To(Equal("2025-02-10"))
		})
	})

	Describe("GET /dashboard/categories", func() {
		It("should default to the expense breakdown", func() {
			w := httptest.NewRecorder()

			handler.GetCategoryBreakdown(w, request("/dashboard/categories"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Categories []dashboard.CategorySlice `json:"categories"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(1))
			Expect(response.Categories[0].Name).To(Equal("Rent"))
			Expect(response.Categories[0].Percentage).To(BeNumerically("~", 100.0, 0.0001))
		})

		It("should reject an unsupported kind", func() {
			w := httptest.NewRecorder()

			handler.GetCategoryBreakdown(w, request("/dashboard/categories?kind=starting_balance"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /dashboard/monthly", func() {
		It("should return the year's monthly totals", func() {
			w := httptest.NewRecorder()

			handler.GetMonthly(w, request("/dashboard/monthly?year=2025"))

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				MonthlyData []dashboard.MonthlyPoint `json:"monthlyData"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.MonthlyData).To(HaveLen(1))
			Expect(response.MonthlyData[0].Month).To(Equal("2025-02-01"))
		})

		It("should reject a non-numeric year", func() {
			w := httptest.NewRecorder()

			handler.GetMonthly(w, request("/dashboard/monthly?year=abc"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
