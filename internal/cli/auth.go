package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the store",
	RunE:  runLogin,
}

var (
	registerEmail    string
	registerUsername string
	registerPassword string
	registerRemember bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a shopper account and sign in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", true, "Persist the session across runs")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Display name")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.Flags().BoolVar(&registerRemember, "remember", true, "Persist the session across runs")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	redirect, err := app.Auth.Login(context.Background(), loginEmail, loginPassword, loginRemember)
	if err != nil {
		return err
	}
	sess := app.Auth.Snapshot().Session
	fmt.Printf("✅ Signed in as %s (%s)\n", sess.Name, sess.Role.Label())
	fmt.Printf("🏠 Landing page: %s\n", redirect)
	if !loginRemember {
		fmt.Println("ℹ️  Session not remembered; it ends with this process")
	}
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	redirect, err := app.Auth.Register(context.Background(), registerEmail, registerUsername, registerPassword, registerRemember)
	if err != nil {
		return err
	}
	sess := app.Auth.Snapshot().Session
	fmt.Printf("🎉 Account created, signed in as %s\n", sess.Name)
	fmt.Printf("🏠 Landing page: %s\n", redirect)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	app.Auth.Logout(context.Background())
	fmt.Println("👋 Signed out; session cleared from both storage tiers")
	fmt.Println("ℹ️  Favorites are kept; run 'shopfront favorites clear' to drop them")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	snap := app.Auth.Snapshot()
	if snap.Session == nil {
		fmt.Println("Not signed in")
		return nil
	}
	s := snap.Session
	fmt.Printf("👤 %s <%s>\n", s.Name, s.Email)
	fmt.Printf("   Role: %s\n", s.Role.Label())
	fmt.Printf("   ID:   %s\n", s.UserID)
	return nil
}
