package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/services/detector"
)

type accountsService interface {
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	SetAccountLocale(ctx context.Context, id, locale string) error
	RemoveAccount(ctx context.Context, id string) error
	ImportAccounts(ctx context.Context, accounts []*model.Account) int
	CountAccounts() int
}

type classifierService interface {
	Languages() []string
}

// cachedClassifier is implemented by classifiers with results cache
type cachedClassifier interface {
	Len() int
}

var errAccountNotFound = errors.New("account not found")

type localeRequest struct {
	Locale string `json:"locale"`
}

func getAccount(svc accountsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		account, err := svc.GetAccount(c.Request().Context(), c.Param("id"))
		if err != nil {
			return accountError(c, err)
		}
		if account == nil {
			return errorResponse(c, http.StatusNotFound, errAccountNotFound)
		}
		return c.JSON(http.StatusOK, account)
	}
}

func setAccountLocale(svc accountsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req localeRequest
		if err := bindJSON(c, &req); err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		locale, err := detector.Canonicalize(req.Locale)
		if err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}

		if err := svc.SetAccountLocale(c.Request().Context(), c.Param("id"), locale); err != nil {
			return accountError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func removeAccount(svc accountsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.RemoveAccount(c.Request().Context(), c.Param("id")); err != nil {
			return accountError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// importAccounts stores multiple account locales at once, accounts with invalid locale are skipped
func importAccounts(svc accountsService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var accounts []*model.Account
		if err := bindJSON(c, &accounts); err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		valid := make([]*model.Account, 0, len(accounts))
		for _, account := range accounts {
			if account == nil {
				continue
			}
			locale, err := detector.Canonicalize(account.Locale)
			if err != nil {
				continue
			}
			account.Locale = locale
			valid = append(valid, account)
		}

		stored := svc.ImportAccounts(c.Request().Context(), valid)
		return c.JSON(http.StatusOK, map[string]int{"received": len(accounts), "stored": stored})
	}
}

func status(svc accountsService, blocklist blocklistService, classifierSvc classifierService) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := map[string]int{
			"accounts":  svc.CountAccounts(),
			"blocklist": len(blocklist.Slice()),
			"languages": len(classifierSvc.Languages()),
		}
		if cached, ok := classifierSvc.(cachedClassifier); ok {
			resp["classifier_cache"] = cached.Len()
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func listBlocked(blocklist blocklistService) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, blocklist.Slice())
	}
}

func block(blocklist blocklistService) echo.HandlerFunc {
	return func(c echo.Context) error {
		blocklist.Add(c.Param("ip"))
		return c.NoContent(http.StatusNoContent)
	}
}

func unblock(blocklist blocklistService) echo.HandlerFunc {
	return func(c echo.Context) error {
		blocklist.Remove(c.Param("ip"))
		return c.NoContent(http.StatusNoContent)
	}
}

func accountError(c echo.Context, err error) error {
	if errors.Is(err, model.ErrEmptyAccountID) || errors.Is(err, model.ErrEmptyLocale) {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	return errorResponse(c, http.StatusInternalServerError, err)
}
