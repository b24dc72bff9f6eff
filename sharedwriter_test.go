/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */
package readline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSharedWriterWriteDeliversLineSignal(t *testing.T) {
	sc := newSharedChannel(4)
	w := newSharedWriter(sc)
	defer w.Close()

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	select {
	case sig := <-sc.ch:
		require.Equal(t, signalLine, sig.kind)
		require.Equal(t, "hello", string(sig.text))
		require.Equal(t, w.ID(), sig.writerID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for line signal")
	}
}

func TestSharedWriterCloneSharesChannel(t *testing.T) {
	sc := newSharedChannel(4)
	w1 := newSharedWriter(sc)
	w2 := w1.Clone()
	defer w1.Close()
	defer w2.Close()

	require.NotEqual(t, w1.ID(), w2.ID())

	_, err := w2.Write([]byte("from clone"))
	require.NoError(t, err)
	select {
	case sig := <-sc.ch:
		require.Equal(t, "from clone", string(sig.text))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for clone's write")
	}
}

func TestSharedWriterCloseIsRefcounted(t *testing.T) {
	sc := newSharedChannel(4)
	w1 := newSharedWriter(sc)
	w2 := w1.Clone()

	w1.Close()
	select {
	case <-sc.closedNotify:
		t.Fatal("closedNotify fired before every clone was closed")
	default:
	}

	w2.Close()
	select {
	case <-sc.closedNotify:
	case <-time.After(time.Second):
		t.Fatal("closedNotify did not fire once every clone was closed")
	}
}

func TestSharedWriterSendFailsAfterClose(t *testing.T) {
	sc := newSharedChannel(4)
	w := newSharedWriter(sc)
	w.Close()

	_, err := w.Write([]byte("too late"))
	require.Error(t, err)
}

func TestSharedWriterPauseFlushResumeSignals(t *testing.T) {
	sc := newSharedChannel(4)
	w := newSharedWriter(sc)
	defer w.Close()

	require.NoError(t, w.Pause())
	require.NoError(t, w.Flush())
	require.NoError(t, w.Resume())

	wantKinds := []lineControlKind{signalPause, signalFlush, signalResume}
	for _, want := range wantKinds {
		select {
		case sig := <-sc.ch:
			require.Equal(t, want, sig.kind)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for signal kind %v", want)
		}
	}
}
