package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"mealhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type recipeListResponse struct {
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Items  []models.Recipe `json:"items"`
}

func main() {
	global := flag.NewFlagSet("mealhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "recipes":
		handleRecipes(ctx, client, *baseURL, sub, args[2:])
	case "rate":
		handleRate(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "suggest":
		handleSuggest(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "household":
		handleHousehold(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "sync":
		handleSync(sub, args[2:])
	case "notify":
		handleNotify(*baseURL, sub, args[2:])
	case "chat":
		handleChat(*baseURL, *tokenPath, sub, args[2:])
	case "export":
		handleExport(ctx, client, *baseURL, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		inviteCode := fs.String("invite-code", "", "join an existing household")
		householdName := fs.String("household", "", "name for a new household")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{
			"username":       *username,
			"email":          *email,
			"password":       *password,
			"invite_code":    *inviteCode,
			"household_name": *householdName,
		}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("✅ registered and logged in")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	default:
		log.Fatal("usage: mealhub auth <login|register|logout>")
	}
}

func handleRecipes(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "search":
		fs := flag.NewFlagSet("recipes search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		cuisine := fs.String("cuisine", "", "cuisine filter")
		protein := fs.String("protein", "", "protein filter")
		maxMinutes := fs.Int("max-minutes", 0, "max total cooking time")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/recipes")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *query != "" {
			qv.Set("q", *query)
		}
		if *cuisine != "" {
			qv.Set("cuisine", *cuisine)
		}
		if *protein != "" {
			qv.Set("protein", *protein)
		}
		if *maxMinutes > 0 {
			qv.Set("max_minutes", fmt.Sprintf("%d", *maxMinutes))
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		qv.Set("offset", fmt.Sprintf("%d", *offset))
		u.RawQuery = qv.Encode()

		var resp recipeListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("search failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("recipes show", flag.ExitOnError)
		id := fs.String("id", "", "recipe id")
		_ = fs.Parse(args)
		if *id == "" {
			log.Fatal("recipe id is required")
		}

		var resp models.Recipe
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/recipes/"+url.PathEscape(*id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: mealhub recipes <search|show>")
	}
}

func handleRate(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "next":
		fs := flag.NewFlagSet("rate next", flag.ExitOnError)
		profileID := fs.String("profile-id", "", "rate on behalf of this household member")
		exclude := fs.String("exclude", "", "skip this recipe id")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/suggest/next")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *profileID != "" {
			qv.Set("profile_id", *profileID)
		}
		if *exclude != "" {
			qv.Set("exclude", *exclude)
		}
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("next failed: %v", err)
		}
		printJSON(resp)
	case "set":
		fs := flag.NewFlagSet("rate set", flag.ExitOnError)
		recipeID := fs.String("recipe-id", "", "recipe id")
		value := fs.String("value", "", "hated|disliked|neutral|liked|loved")
		exclude := fs.String("exclude", "", "comma-separated ingredients the rating should not count against")
		profileID := fs.String("profile-id", "", "rate on behalf of this household member")
		_ = fs.Parse(args)
		if *recipeID == "" || *value == "" {
			log.Fatal("recipe-id and value are required")
		}

		payload := map[string]any{
			"recipe_id": *recipeID,
			"value":     *value,
		}
		if *exclude != "" {
			payload["excluded_ingredients"] = splitComma(*exclude)
		}
		if *profileID != "" {
			payload["profile_id"] = *profileID
		}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/ratings", token, payload, &resp); err != nil {
			log.Fatalf("rate failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("rate list", flag.ExitOnError)
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/ratings")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		qv.Set("offset", fmt.Sprintf("%d", *offset))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "remove":
		fs := flag.NewFlagSet("rate remove", flag.ExitOnError)
		recipeID := fs.String("recipe-id", "", "recipe id")
		_ = fs.Parse(args)
		if *recipeID == "" {
			log.Fatal("recipe-id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/ratings/"+url.PathEscape(*recipeID), token, nil, &resp); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: mealhub rate <next|set|list|remove>")
	}
}

func handleSuggest(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "mine", "":
		fs := flag.NewFlagSet("suggest mine", flag.ExitOnError)
		profileID := fs.String("profile-id", "", "suggest for this household member")
		limit := fs.Int("limit", 10, "number of suggestions")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/suggest")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *profileID != "" {
			qv.Set("profile_id", *profileID)
		}
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("suggest failed: %v", err)
		}
		printJSON(resp)
	case "family":
		fs := flag.NewFlagSet("suggest family", flag.ExitOnError)
		limit := fs.Int("limit", 10, "number of suggestions")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/suggest/family")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", *limit))
		u.RawQuery = qv.Encode()

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("suggest family failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: mealhub suggest <mine|family>")
	}
}

func handleHousehold(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "me":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/households/me", token, nil, &resp); err != nil {
			log.Fatalf("household failed: %v", err)
		}
		printJSON(resp)
	case "members":
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/households/me/members", token, nil, &resp); err != nil {
			log.Fatalf("members failed: %v", err)
		}
		printJSON(resp)
	case "add-profile":
		fs := flag.NewFlagSet("household add-profile", flag.ExitOnError)
		name := fs.String("name", "", "member name")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("name is required")
		}

		payload := map[string]string{"name": *name}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/households/me/profiles", token, payload, &resp); err != nil {
			log.Fatalf("add-profile failed: %v", err)
		}
		printJSON(resp)
	case "join":
		fs := flag.NewFlagSet("household join", flag.ExitOnError)
		inviteCode := fs.String("invite-code", "", "invite code")
		_ = fs.Parse(args)
		if *inviteCode == "" {
			log.Fatal("invite-code is required")
		}

		payload := map[string]string{"invite_code": *inviteCode}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/households/join", token, payload, &resp); err != nil {
			log.Fatalf("join failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: mealhub household <me|members|add-profile|join>")
	}
}

func handleSync(sub string, args []string) {
	switch sub {
	case "listen":
		fs := flag.NewFlagSet("sync listen", flag.ExitOnError)
		addr := fs.String("addr", "127.0.0.1:7070", "TCP sync server address")
		pretty := fs.Bool("pretty", true, "pretty print JSON events")
		_ = fs.Parse(args)
		for {
			if err := runSyncTCP(*addr, *pretty); err != nil {
				log.Printf("[sync] disconnected: %v", err)
			}
			time.Sleep(1 * time.Second)
		}
	default:
		log.Fatal("usage: mealhub sync listen")
	}
}

func handleNotify(baseURL, sub string, args []string) {
	switch sub {
	case "subscribe":
		fs := flag.NewFlagSet("notify subscribe", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws on API host)")
		householdID := fs.String("household-id", "", "only events for this household")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(baseURL, "/ws")
			if err != nil {
				log.Fatalf("ws url: %v", err)
			}
		}
		if *householdID != "" {
			endpoint += "?household_id=" + url.QueryEscape(*householdID)
		}
		if err := runWebSocket(endpoint, ""); err != nil {
			log.Fatalf("subscribe failed: %v", err)
		}
	default:
		log.Fatal("usage: mealhub notify subscribe")
	}
}

func handleChat(baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "join":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("chat join", flag.ExitOnError)
		wsURL := fs.String("ws", "", "WebSocket URL (defaults to /ws/chat on API host)")
		_ = fs.Parse(args)

		endpoint := *wsURL
		if endpoint == "" {
			var err error
			endpoint, err = websocketURL(baseURL, "/ws/chat")
			if err != nil {
				log.Fatalf("ws url: %v", err)
			}
		}
		if err := runChat(endpoint, token); err != nil {
			log.Fatalf("chat join failed: %v", err)
		}
	default:
		log.Fatal("usage: mealhub chat join")
	}
}

func handleExport(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/recipes.json", "output JSON path")
		limit := fs.Int("limit", 200, "max recipes to export")
		_ = fs.Parse(args)

		items, err := fetchRecipes(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d recipes to %s", len(items), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/recipes.csv", "output CSV path")
		limit := fs.Int("limit", 200, "max recipes to export")
		_ = fs.Parse(args)

		items, err := fetchRecipes(ctx, client, baseURL, *limit)
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("✅ exported %d recipes to %s", len(items), *out)
	default:
		log.Fatal("usage: mealhub export <json|csv>")
	}
}

func runSyncTCP(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[sync] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

func runWebSocket(wsURL, token string) error {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[notify] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

// runChat opens the household chat socket: incoming messages print as
// they arrive, stdin lines are sent. Prefix a line with "/recipe <id> "
// to share a recipe into the conversation.
func runChat(wsURL, token string) error {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("[chat] connected to %s", wsURL)

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			fmt.Println(string(msg))
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		payload := map[string]string{"text": text}
		if rest, ok := strings.CutPrefix(text, "/recipe "); ok {
			fields := strings.Fields(rest)
			if len(fields) > 0 {
				payload["recipe_id"] = fields[0]
				payload["text"] = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
			}
		}

		if err := conn.WriteJSON(payload); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func fetchRecipes(ctx context.Context, client *http.Client, baseURL string, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var out []models.Recipe
	offset := 0
	for len(out) < limit {
		pageSize := 50
		if remaining := limit - len(out); remaining < pageSize {
			pageSize = remaining
		}
		u, err := url.Parse(baseURL + "/recipes")
		if err != nil {
			return nil, err
		}
		qv := u.Query()
		qv.Set("limit", fmt.Sprintf("%d", pageSize))
		qv.Set("offset", fmt.Sprintf("%d", offset))
		u.RawQuery = qv.Encode()

		var resp recipeListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		out = append(out, resp.Items...)
		offset += len(resp.Items)
		if offset >= resp.Total {
			break
		}
	}

	return out, nil
}

func writeJSON(path string, items []models.Recipe) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []models.Recipe) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "name", "source", "url", "description", "ingredients",
		"prep_minutes", "cook_minutes", "servings", "external_rating", "external_rating_count",
	}); err != nil {
		return err
	}
	for _, item := range items {
		ingredients := make([]string, 0, len(item.Ingredients))
		for _, ing := range item.Ingredients {
			name := ing.Name
			if ing.Amount != "" {
				name = ing.Amount + " " + name
			}
			ingredients = append(ingredients, name)
		}

		rating := ""
		if item.ExternalRating != nil {
			rating = fmt.Sprintf("%.1f", *item.ExternalRating)
		}
		ratingCount := ""
		if item.ExternalRatingCount != nil {
			ratingCount = fmt.Sprintf("%d", *item.ExternalRatingCount)
		}

		if err := writer.Write([]string{
			item.ID,
			item.Name,
			item.Source,
			item.URL,
			item.Description,
			strings.Join(ingredients, "|"),
			minutesField(item.PrepMinutes),
			minutesField(item.CookMinutes),
			item.Servings,
			rating,
			ratingCount,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func minutesField(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.mealhub-token.json"
	}
	return filepath.Join(home, ".mealhub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func splitComma(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("mealhub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  recipes search|show")
	fmt.Println("  rate next|set|list|remove")
	fmt.Println("  suggest mine|family")
	fmt.Println("  household me|members|add-profile|join")
	fmt.Println("  sync listen")
	fmt.Println("  notify subscribe")
	fmt.Println("  chat join")
	fmt.Println("  export json|csv")
}
