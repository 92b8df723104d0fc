package cli

import (
	"context"
	"fmt"

	"github.com/matthieukhl/shopfront/internal/types"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Employee/admin back office",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List accounts",
	RunE:  runAdminUsers,
}

var (
	staffEmail    string
	staffUsername string
	staffPassword string
	staffRole     string
)

var adminCreateStaffCmd = &cobra.Command{
	Use:   "create-staff",
	Short: "Create an employee or superadmin account",
	RunE:  runAdminCreateStaff,
}

var adminCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var adminCategoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories with approval state",
	RunE:  runAdminCategoriesList,
}

var adminCategoriesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category (pending approval)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoriesCreate,
}

var adminCategoriesApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoriesApprove,
}

var adminCategoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoriesDelete,
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage catalog entries",
}

var adminProductsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every product with approval state",
	RunE:  runAdminProductsList,
}

var adminProductsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List products awaiting approval",
	RunE:  runAdminProductsPending,
}

var adminProductsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductsApprove,
}

var (
	deleteApproved bool
)

var adminProductsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductsDelete,
}

var (
	createTitle       string
	createPrice       float64
	createCategory    string
	createDescription string
	createImage       string
	createInventory   int
)

var adminProductsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (pending approval)",
	RunE:  runAdminProductsCreate,
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd, adminCreateStaffCmd, adminCategoriesCmd, adminProductsCmd)
	adminCategoriesCmd.AddCommand(adminCategoriesListCmd, adminCategoriesCreateCmd, adminCategoriesApproveCmd, adminCategoriesDeleteCmd)
	adminProductsCmd.AddCommand(adminProductsListCmd, adminProductsPendingCmd, adminProductsApproveCmd, adminProductsDeleteCmd, adminProductsCreateCmd)

	adminCreateStaffCmd.Flags().StringVar(&staffEmail, "email", "", "Account email")
	adminCreateStaffCmd.Flags().StringVar(&staffUsername, "username", "", "Display name")
	adminCreateStaffCmd.Flags().StringVar(&staffPassword, "password", "", "Initial password")
	adminCreateStaffCmd.Flags().StringVar(&staffRole, "role", "employee", "Role: employee or admin")
	_ = adminCreateStaffCmd.MarkFlagRequired("email")
	_ = adminCreateStaffCmd.MarkFlagRequired("password")

	adminProductsDeleteCmd.Flags().BoolVar(&deleteApproved, "approved", true, "Whether the product is in the approved index")

	adminProductsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Product title")
	adminProductsCreateCmd.Flags().Float64Var(&createPrice, "price", 0, "Unit price")
	adminProductsCreateCmd.Flags().StringVar(&createCategory, "category", "", "Category name")
	adminProductsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Description")
	adminProductsCreateCmd.Flags().StringVar(&createImage, "image", "", "Image URL")
	adminProductsCreateCmd.Flags().IntVar(&createInventory, "inventory", 0, "Initial inventory")
	_ = adminProductsCreateCmd.MarkFlagRequired("title")
	_ = adminProductsCreateCmd.MarkFlagRequired("price")
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/list-users", types.RoleAdmin); err != nil {
		return err
	}
	users, err := app.Users.GetUsers(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("👥 %d account(s):\n", len(users))
	for _, u := range users {
		fmt.Printf("  %-28s %-20s %-10s %s\n", u.Email, u.Username, u.Role.Label(), u.ID)
	}
	return nil
}

func runAdminCreateStaff(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/create-employee", types.RoleAdmin); err != nil {
		return err
	}
	role := types.ParseRole(staffRole)
	if err := app.Users.CreateStaff(context.Background(), staffEmail, staffUsername, staffPassword, role); err != nil {
		return err
	}
	fmt.Printf("✅ Created %s account for %s\n", role.Label(), staffEmail)
	return nil
}

func runAdminCategoriesList(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/list-categories", types.RoleEmployee, types.RoleAdmin); err != nil {
		return err
	}
	cats, err := app.Categories.GetAll(context.Background())
	if err != nil {
		return err
	}
	for _, c := range cats {
		state := "pending"
		if c.State == 1 {
			state = "approved"
		}
		fmt.Printf("  %-20s %-8s %d product(s)  %s\n", c.Name, state, len(c.Products), c.ID)
	}
	return nil
}

func runAdminCategoriesCreate(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/create-category", types.RoleEmployee, types.RoleAdmin); err != nil {
		return err
	}
	cat, err := app.Categories.Create(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("✅ Created category %s (slug %s), pending approval\n", cat.Name, cat.Slug)
	return nil
}

func runAdminCategoriesApprove(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/review-jobs", types.RoleAdmin); err != nil {
		return err
	}
	if err := app.Categories.Approve(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Println("✅ Category approved")
	return nil
}

func runAdminCategoriesDelete(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/list-categories", types.RoleAdmin); err != nil {
		return err
	}
	if err := app.Categories.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Println("🗑️  Category deleted")
	return nil
}

func runAdminProductsList(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/list-products", types.RoleEmployee, types.RoleAdmin); err != nil {
		return err
	}
	list, err := app.Products.GetAllDetailed(context.Background())
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Printf("  %-32s %8.2f  %-10s  avail %3d  %s\n", p.Title, p.Price, p.Status, p.InventoryAvailable, p.ID)
	}
	return nil
}

func runAdminProductsPending(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/review-jobs", types.RoleEmployee, types.RoleAdmin); err != nil {
		return err
	}
	list, err := app.Products.GetPendingApproval(context.Background())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("📭 Nothing pending approval")
		return nil
	}
	for _, p := range list {
		fmt.Printf("  %-32s %8.2f  %s\n", p.Title, p.Price, p.ID)
	}
	return nil
}

func runAdminProductsApprove(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/review-jobs", types.RoleAdmin); err != nil {
		return err
	}
	if err := app.Products.Approve(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Println("✅ Product approved")
	return nil
}

func runAdminProductsDelete(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/list-products", types.RoleAdmin); err != nil {
		return err
	}
	if err := app.Products.Delete(context.Background(), args[0], deleteApproved); err != nil {
		return err
	}
	fmt.Println("🗑️  Product deleted")
	return nil
}

func runAdminProductsCreate(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return err
	}
	if err := app.requireRoles("/create-product", types.RoleEmployee, types.RoleAdmin); err != nil {
		return err
	}
	draft := types.ProductDraft{
		Title:       createTitle,
		Price:       createPrice,
		Category:    createCategory,
		Description: createDescription,
		Image:       createImage,
		Inventory:   createInventory,
		Status:      types.ProductUnapproved,
	}
	p, err := app.Products.Create(context.Background(), draft)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Created %s (%s), pending approval\n", p.Title, p.ID)
	return nil
}
