package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query         string
		limit, offset int
	}{
		{"/", 20, 0},
		{"/?limit=5&offset=10", 5, 10},
		{"/?limit=500", 20, 0},
		{"/?limit=-1&offset=-3", 20, 0},
		{"/?limit=abc", 20, 0},
	}
	for _, tc := range cases {
		c, _ := testContext(tc.query)
		limit, offset := pageParams(c)
		require.Equal(t, tc.limit, limit, tc.query)
		require.Equal(t, tc.offset, offset, tc.query)
	}
}

func TestParamID(t *testing.T) {
	c, _ := testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, ok := paramID(c, "id")
	require.True(t, ok)
	require.Equal(t, uint(42), id)

	for _, bad := range []string{"0", "-1", "x"} {
		c, w := testContext("/")
		c.Params = gin.Params{{Key: "id", Value: bad}}
		_, ok := paramID(c, "id")
		require.False(t, ok, bad)
		require.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestContainsID(t *testing.T) {
	require.True(t, containsID([]uint{1, 2, 3}, 2))
	require.False(t, containsID(nil, 2))
}
