package service

import (
	"errors"
	"fmt"
	"testing"

	"notekeeper-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeService_BoundedNewestFirst(t *testing.T) {
	s := NewNoticeService(3, logger.NewNopLogger())

	for i := 0; i < 5; i++ {
		s.Record("create note", fmt.Sprintf("failure %d", i), errors.New("boom"))
	}

	all := s.List(0)
	require.Len(t, all, 3)
	assert.Equal(t, "failure 4", all[0].Message)
	assert.Equal(t, "failure 2", all[2].Message)

	assert.Len(t, s.List(1), 1)
}
