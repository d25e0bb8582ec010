// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package rowsource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControlResultHandoff(t *testing.T) {
	chk := require.New(t)
	c := newControl[int]()
	chk.Equal(StageNotStarted, c.loadStage())

	h := c.start()
	chk.Same(c, h)
	chk.Equal(StageInProgress, c.loadStage())

	h.setResult(ReadResult[int]{Chunk: []int{1, 2}, RowsRead: 2, BytesRead: 16})
	chk.Equal(StageFinished, c.loadStage())

	result, err := c.takeResult()
	chk.NoError(err)
	chk.Equal([]int{1, 2}, result.Chunk)
	chk.Equal(uint64(2), result.RowsRead)
	chk.Equal(uint64(16), result.BytesRead)
	chk.Equal(StageNotStarted, c.loadStage())
}

func TestControlErrorHandoff(t *testing.T) {
	chk := require.New(t)
	c := newControl[int]()

	readErr := errors.New("storage unavailable")
	c.start().setError(readErr)
	chk.Equal(StageFinished, c.loadStage())

	result, err := c.takeResult()
	chk.ErrorIs(err, readErr)
	chk.Empty(result.Chunk)
	chk.Equal(StageNotStarted, c.loadStage())
}

func TestControlReusableAcrossEpisodes(t *testing.T) {
	chk := require.New(t)
	c := newControl[int]()

	for episode := 0; episode < 3; episode++ {
		c.start().setResult(ReadResult[int]{RowsRead: uint64(episode + 1)})
		result, err := c.takeResult()
		chk.NoError(err)
		chk.Equal(uint64(episode+1), result.RowsRead)
		chk.Equal(StageNotStarted, c.loadStage())
	}
}

func TestControlErrorSlotClearedOnTake(t *testing.T) {
	chk := require.New(t)
	c := newControl[int]()

	c.start().setError(errors.New("transient"))
	_, err := c.takeResult()
	chk.Error(err)

	// The next episode must not see the previous episode's error.
	c.start().setResult(ReadResult[int]{RowsRead: 1})
	result, err := c.takeResult()
	chk.NoError(err)
	chk.Equal(uint64(1), result.RowsRead)
}

func TestControlStagePanics(t *testing.T) {
	chk := require.New(t)

	c := newControl[int]()
	chk.PanicsWithValue("read result delivered in stage NotStarted", func() {
		c.setResult(ReadResult[int]{})
	})
	chk.PanicsWithValue("read error delivered in stage NotStarted", func() {
		c.setError(errors.New("boom"))
	})
	chk.PanicsWithValue("read result taken in stage NotStarted", func() {
		_, _ = c.takeResult()
	})

	c.start()
	chk.PanicsWithValue("read cycle started in stage InProgress", func() {
		c.start()
	})
	chk.PanicsWithValue("read result taken in stage InProgress", func() {
		_, _ = c.takeResult()
	})

	c.setResult(ReadResult[int]{RowsRead: 1})
	chk.PanicsWithValue("read result delivered in stage Finished", func() {
		c.setResult(ReadResult[int]{})
	})
	chk.PanicsWithValue("read error delivered in stage Finished", func() {
		c.setError(errors.New("boom"))
	})
}
