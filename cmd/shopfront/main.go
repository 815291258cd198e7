package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pumpstore-next/internal/catalog"
	"github.com/pumpstore-next/internal/checkout"
	"github.com/pumpstore-next/internal/config"
	"github.com/pumpstore-next/internal/constants"
	"github.com/pumpstore-next/internal/logger"
	"github.com/pumpstore-next/internal/models"
	"github.com/pumpstore-next/internal/provider"
	"github.com/pumpstore-next/internal/storefront"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
	ansiRed   = "\033[31m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.App.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	flag.Parse()

	terminal := &terminalUI{out: os.Stdout}
	container, err := provider.NewContainer(cfg, terminal, terminal)
	if err != nil {
		stdLog.Fatalf("容器初始化失败: %v", err)
	}
	defer container.Close()

	if identity := container.Session.Current(); identity != nil {
		fmt.Printf("%s已恢复会话: %s <%s>%s\n", ansiDim, identity.Name, identity.Email, ansiReset)
	}

	shell := newShell(container, terminal)
	shell.run(context.Background())
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "PumpStore Shopfront" + ansiReset)
	fmt.Println(ansiDim + "storefront client for the pump shop API — type 'help' for commands" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

// terminalUI 终端实现的跳转与阻断通知回调
type terminalUI struct {
	out *os.File
}

// Navigate 实现 storefront.Navigator
func (t *terminalUI) Navigate(target string, message string) {
	fmt.Fprintf(t.out, "%s→ redirect to %s: %s%s\n", ansiDim, target, message, ansiReset)
}

// Alert 实现 admin.Alerter
func (t *terminalUI) Alert(message string) {
	fmt.Fprintf(t.out, "%s! %s%s\n", ansiRed, message, ansiReset)
}

// shell 交互循环。所有操作都在单一控制流里顺序执行，
// 购物车与会话只被这一个"界面线程"改动。
type shell struct {
	container *provider.Container
	terminal  *terminalUI
	scanner   *bufio.Scanner

	criteria catalog.Criteria
	listing  []models.Product
}

func newShell(container *provider.Container, terminal *terminalUI) *shell {
	return &shell{
		container: container,
		terminal:  terminal,
		scanner:   bufio.NewScanner(os.Stdin),
		criteria: catalog.Criteria{
			Category: constants.CategoryAll,
			Sort:     constants.SortNewest,
		},
	}
}

func (s *shell) run(ctx context.Context) {
	for {
		fmt.Print(ansiGreen + "shopfront> " + ansiReset)
		if !s.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		command, args := fields[0], fields[1:]
		if command == "quit" || command == "exit" {
			return
		}
		s.dispatch(ctx, command, args)
	}
}

func (s *shell) dispatch(ctx context.Context, command string, args []string) {
	switch command {
	case "help":
		s.printHelp()
	case "browse":
		s.browse(ctx)
	case "search":
		s.criteria.Query = strings.Join(args, " ")
		s.browse(ctx)
	case "category":
		if len(args) == 0 {
			s.criteria.Category = constants.CategoryAll
		} else {
			s.criteria.Category = strings.Join(args, " ")
		}
		s.browse(ctx)
	case "sort":
		s.setSort(args)
	case "add":
		s.addToCart(args)
	case "cart":
		s.showCart()
	case "remove":
		s.removeLine(args)
	case "qty":
		s.setQuantity(args)
	case "checkout":
		s.checkout(ctx)
	case "orders":
		s.myOrders(ctx)
	case "login":
		s.login(ctx, args)
	case "register":
		s.register(ctx, args)
	case "logout":
		s.logout()
	case "whoami":
		s.whoami()
	case "admin":
		s.adminDispatch(ctx, args)
	default:
		fmt.Printf("unknown command: %s (try 'help')\n", command)
	}
}

func (s *shell) printHelp() {
	fmt.Print(`catalog:
  browse                      list products with current criteria
  search <text>               set text query and list
  category [name]             set category filter (empty = All Categories)
  sort <newest|price-asc|price-desc>
cart:
  add <n> [qty]               add n-th listed product
  cart                        show cart with totals
  remove <n>                  remove n-th cart line
  qty <n> <count>             set quantity of n-th line (0 removes)
  checkout                    validate form and submit the order
account:
  login <email> <password>    register <name> <email> <password>
  logout / whoami / orders
admin:
  admin orders [status] [query]
  admin status <n> <status>   admin delete <n>
  admin products|categories|users
`)
}

func (s *shell) browse(ctx context.Context) {
	result, err := s.container.Storefront.Browse(ctx, s.criteria)
	if err != nil {
		fmt.Printf("browse failed: %v\n", err)
		return
	}
	s.listing = result.Products
	if result.Source == catalog.SourceOfflineSample {
		fmt.Println(ansiDim + "(offline mode: showing sample catalog)" + ansiReset)
	}
	if len(s.listing) == 0 {
		fmt.Println("no products found, try adjusting search or category")
		return
	}
	for i, product := range s.listing {
		stock := "in stock"
		if !product.InStock() {
			stock = "out of stock"
		}
		fmt.Printf("%2d. %-34s $%-9s %-22s %s\n",
			i+1, product.Name, product.Price.String(), product.CategoryName(), stock)
	}
}

func (s *shell) setSort(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: sort <newest|price-asc|price-desc>")
		return
	}
	switch args[0] {
	case constants.SortNewest, constants.SortPriceAsc, constants.SortPriceDesc:
		s.criteria.Sort = args[0]
		fmt.Printf("sort: %s\n", args[0])
	default:
		fmt.Println("usage: sort <newest|price-asc|price-desc>")
	}
}

func (s *shell) addToCart(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: add <n> [qty]")
		return
	}
	product := s.listedProduct(args[0])
	if product == nil {
		return
	}
	quantity := 1
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("usage: add <n> [qty]")
			return
		}
		quantity = parsed
	}
	line, err := s.container.Storefront.AddToCart(product, quantity)
	if errors.Is(err, storefront.ErrAuthRequired) {
		fmt.Println("⚠ Please log in first")
		return
	}
	if err != nil {
		fmt.Printf("add failed: %v\n", err)
		return
	}
	fmt.Printf("✓ added %s ×%d\n", line.Name, line.Quantity)
}

func (s *shell) listedProduct(arg string) *models.Product {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 1 || index > len(s.listing) {
		fmt.Println("no such listing entry, run 'browse' first")
		return nil
	}
	return &s.listing[index-1]
}

func (s *shell) showCart() {
	aggregate := s.container.Cart
	if aggregate.Empty() {
		fmt.Println("cart is empty")
		return
	}
	for i, line := range aggregate.Lines() {
		fmt.Printf("%2d. %-34s $%-9s ×%d\n", i+1, line.Name, line.Price.String(), line.Quantity)
	}
	fmt.Printf("%ssubtotal %s   tax %s   total %s%s\n", ansiBold,
		aggregate.Subtotal().String(), aggregate.Tax().String(), aggregate.Total().String(), ansiReset)
}

func (s *shell) cartLineID(arg string) (string, bool) {
	index, err := strconv.Atoi(arg)
	lines := s.container.Cart.Lines()
	if err != nil || index < 1 || index > len(lines) {
		fmt.Println("no such cart line")
		return "", false
	}
	return lines[index-1].ID, true
}

func (s *shell) removeLine(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: remove <n>")
		return
	}
	if lineID, ok := s.cartLineID(args[0]); ok {
		if err := s.container.Cart.RemoveLine(lineID); err != nil {
			fmt.Printf("remove failed: %v\n", err)
		}
	}
}

func (s *shell) setQuantity(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <n> <count>")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("usage: qty <n> <count>")
		return
	}
	if lineID, ok := s.cartLineID(args[0]); ok {
		if err := s.container.Cart.SetQuantity(lineID, quantity); err != nil {
			fmt.Printf("qty failed: %v\n", err)
		}
	}
}

func (s *shell) prompt(label string) string {
	fmt.Printf("  %s: ", label)
	if !s.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

func (s *shell) checkout(ctx context.Context) {
	flow := s.container.Checkout
	if !flow.CanCheckout() {
		fmt.Println("No Items in Cart — please add items before checking out.")
		return
	}
	form := checkout.Form{
		FirstName: s.prompt("first name"),
		LastName:  s.prompt("last name"),
		Email:     s.prompt("email"),
		Phone:     s.prompt("phone"),
		Address:   s.prompt("address"),
		City:      s.prompt("city"),
		State:     s.prompt("state"),
		ZipCode:   s.prompt("zip code"),
	}

	err := flow.Submit(ctx, form)
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		for field, message := range validationErr.Fields {
			fmt.Printf("  %s%s: %s%s\n", ansiRed, field, message, ansiReset)
		}
		return
	}
	if err != nil {
		fmt.Println(ansiRed + "Failed to submit order. Please try again." + ansiReset)
		return
	}
	fmt.Printf("%s✓ order submitted%s — see %s\n", ansiGreen, ansiReset, checkout.ConfirmationTarget)
}

func (s *shell) myOrders(ctx context.Context) {
	orders, err := s.container.Storefront.MyOrders(ctx)
	if errors.Is(err, storefront.ErrAuthRequired) {
		fmt.Println("⚠ Please log in first")
		return
	}
	if err != nil {
		fmt.Printf("orders failed: %v\n", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return
	}
	printOrders(orders)
}

func printOrders(orders []models.Order) {
	for i, order := range orders {
		fmt.Printf("%2d. %-26s %-10s total %-9s %s\n",
			i+1, order.ID, order.Status, order.Total.String(),
			order.CreatedAt.Format("2006-01-02"))
	}
}

func (s *shell) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}
	identity, err := s.container.Storefront.Login(ctx, args[0], args[1])
	if err != nil {
		fmt.Printf("login failed: %v\n", err)
		return
	}
	fmt.Printf("welcome back, %s\n", identity.Name)
}

func (s *shell) register(ctx context.Context, args []string) {
	if len(args) != 3 {
		fmt.Println("usage: register <name> <email> <password>")
		return
	}
	identity, err := s.container.Storefront.Register(ctx, args[0], args[1], args[2])
	if err != nil {
		fmt.Printf("register failed: %v\n", err)
		return
	}
	fmt.Printf("welcome, %s\n", identity.Name)
}

func (s *shell) logout() {
	if err := s.container.Storefront.Logout(); err != nil {
		fmt.Printf("logout failed: %v\n", err)
		return
	}
	fmt.Println("logged out")
}

func (s *shell) whoami() {
	identity := s.container.Session.Current()
	if identity == nil {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("%s <%s> role=%s\n", identity.Name, identity.Email, identity.Role)
}

func (s *shell) adminDispatch(ctx context.Context, args []string) {
	if !s.container.Session.IsAdmin() {
		fmt.Println("admin commands require an Admin session")
		return
	}
	if len(args) == 0 {
		fmt.Println("usage: admin <orders|status|delete|products|categories|users> ...")
		return
	}
	switch args[0] {
	case "orders":
		s.adminOrders(ctx, args[1:])
	case "status":
		s.adminStatus(ctx, args[1:])
	case "delete":
		s.adminDelete(ctx, args[1:])
	case "products":
		if err := s.container.Products.Refresh(ctx); err == nil {
			for i, product := range s.container.Products.Products() {
				fmt.Printf("%2d. %-34s $%-9s stock %d\n", i+1, product.Name, product.Price.String(), product.Stock)
			}
		}
	case "categories":
		if err := s.container.Categories.Refresh(ctx); err == nil {
			for i, category := range s.container.Categories.Categories() {
				fmt.Printf("%2d. %s\n", i+1, category.Name)
			}
		}
	case "users":
		if err := s.container.Users.Refresh(ctx); err == nil {
			for i, user := range s.container.Users.Users() {
				fmt.Printf("%2d. %-24s %-30s %s\n", i+1, user.Name, user.Email, user.Role)
			}
		}
	default:
		fmt.Println("usage: admin <orders|status|delete|products|categories|users> ...")
	}
}

func (s *shell) adminOrders(ctx context.Context, args []string) {
	if err := s.container.Orders.Refresh(ctx); err != nil {
		return
	}
	status := constants.StatusFilterAll
	query := ""
	if len(args) > 0 {
		status = args[0]
	}
	if len(args) > 1 {
		query = strings.Join(args[1:], " ")
	}
	filtered := s.container.Orders.Filter(query, status)
	fmt.Printf("Total: %d orders\n", len(filtered))
	printOrders(filtered)
}

func (s *shell) adminStatus(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: admin status <order-id> <status>")
		return
	}
	if err := s.container.Orders.UpdateStatus(ctx, args[0], args[1]); err != nil {
		return
	}
	fmt.Printf("order %s → %s\n", args[0], args[1])
}

func (s *shell) adminDelete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: admin delete <order-id>")
		return
	}
	deleted, err := s.container.Orders.Delete(ctx, args[0], func(prompt string) bool {
		answer := s.prompt(prompt + " [y/N]")
		return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
	})
	if err != nil {
		return
	}
	if deleted {
		fmt.Println("order deleted")
	} else {
		fmt.Println("delete cancelled")
	}
}
