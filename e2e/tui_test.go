//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenSearchAndQuit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	tf.WriteDoc("pets.html", "<p>cat Cat CAT</p>")

	require.NoError(t, tf.StartApp("pets.html"))
	require.True(t, tf.SeePlain("pets"), "tab shows the file name")
	require.True(t, tf.SeePlain("cat Cat CAT"))

	require.NoError(t, tf.Prompt("/", "cat"))
	require.True(t, tf.SeePlain("Match 1 of 3"))

	require.NoError(t, tf.SendKeys("n"))
	require.True(t, tf.SeePlain("Match 2 of 3"))

	require.NoError(t, tf.SendKeys("q"))
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestReplaceAllAndSave(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	tf.WriteDoc("pets.html", "<p>cat Cat CAT</p>")

	require.NoError(t, tf.StartApp("pets.html"))
	require.True(t, tf.SeePlain("cat Cat CAT"))

	require.NoError(t, tf.Prompt("/", "cat"))
	require.True(t, tf.SeePlain("Match 1 of 3"))
	require.NoError(t, tf.Prompt("R", "dog"))
	require.True(t, tf.SeePlain("Replaced 3 occurrences"))
	require.True(t, tf.SeePlain("pets ●"), "tab is marked modified")

	// The save prompt is prefilled with the tab name
	require.NoError(t, tf.SendKeys("s"))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("Saved "))
	require.Equal(t, "<p>dog dog dog</p>", tf.ReadDoc(t, "pets.html"))

	require.NoError(t, tf.SendKeys("q"))
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestQuitAsksAboutUnsavedChanges(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	tf.WriteDoc("pets.html", "<p>cat</p>")

	require.NoError(t, tf.StartApp("pets.html"))
	require.True(t, tf.SeePlain("pets"))

	require.NoError(t, tf.Prompt("/", "cat"))
	require.True(t, tf.SeePlain("Match 1 of 1"))
	require.NoError(t, tf.SendKeys("b"))
	require.True(t, tf.SeePlain("pets ●"))

	require.NoError(t, tf.SendKeys("q"))
	require.True(t, tf.SeePlain("Quit with unsaved changes? (y/n)"))
	require.NoError(t, tf.SendKeys("y"))
	require.NoError(t, tf.WaitExit(2*time.Second))
	require.Equal(t, "<p>cat</p>", tf.ReadDoc(t, "pets.html"))
}

func TestDirectoryArgumentOpensTabs(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()
	tf.WriteDoc("docs/alpha.html", "<p>first</p>")
	tf.WriteDoc("docs/beta.txt", "second")

	require.NoError(t, tf.StartApp("docs"))
	require.True(t, tf.SeePlain("alpha"))
	require.True(t, tf.SeePlain("beta"))
	require.True(t, tf.SeePlain("first"))

	require.NoError(t, tf.SendKeys(KeyTab))
	require.True(t, tf.SeePlain("second"))

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	require.NoError(t, tf.WaitExit(2*time.Second))
}

func TestHelpOpensPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.SeePlain("untitled"))

	require.NoError(t, tf.SendKeys("?"))
	require.True(t, tf.SeePlain("Search & Replace"))

	require.NoError(t, tf.SendKeys("q"))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, tf.SendKeys("q"))
	require.NoError(t, tf.WaitExit(2*time.Second))
}
