package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapsy/internal/storage"
)

var (
	flagUsername string
	flagSound    bool
	flagHints    bool
	flagReset    bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change profile settings",
	Long: `Show the profile, or change the username and game settings.

A username is needed to appear on the leaderboard. Names are stored
lower-cased and must not be taken by another player.

Examples:
  tapsy settings
  tapsy settings --username ada
  tapsy settings --sound=false --hints
  tapsy settings --reset`,
	Run: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagUsername, "username", "", "Set the leaderboard username")
	settingsCmd.Flags().BoolVar(&flagSound, "sound", true, "Enable sound")
	settingsCmd.Flags().BoolVar(&flagHints, "hints", false, "Highlight the next tile while playing")
	settingsCmd.Flags().BoolVar(&flagReset, "reset", false, "Erase the profile, all scores and the leaderboard entry")
}

func runSettings(cmd *cobra.Command, _ []string) {
	store := mustOpenStore(loadConfig())
	defer store.Close()

	if flagReset {
		if err := store.ResetProgress(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Progress reset.")
		return
	}

	profile, err := store.Profile()
	if err != nil {
		fail("%v", err)
	}

	if cmd.Flags().Changed("username") {
		name := storage.NormalizeName(flagUsername)
		// An empty name clears the username
		if name != "" && name != profile.Username {
			ok, err := store.UsernameAvailable(name)
			if err != nil {
				fail("%v", err)
			}
			if !ok {
				fail("username %q is taken", name)
			}
		}
		if err := store.SetUsername(name); err != nil {
			fail("%v", err)
		}
	}

	settings := profile.Settings
	if cmd.Flags().Changed("sound") {
		settings.SoundEnabled = flagSound
	}
	if cmd.Flags().Changed("hints") {
		settings.HintsEnabled = flagHints
	}
	if settings != profile.Settings {
		if err := store.UpdateSettings(settings); err != nil {
			fail("%v", err)
		}
	}

	profile, err = store.Profile()
	if err != nil {
		fail("%v", err)
	}
	name := profile.Username
	if name == "" {
		name = "(none)"
	}
	fmt.Printf("Username:  %s\n", name)
	fmt.Printf("Sound:     %s\n", onOff(profile.Settings.SoundEnabled))
	fmt.Printf("Hints:     %s\n", onOff(profile.Settings.HintsEnabled))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
