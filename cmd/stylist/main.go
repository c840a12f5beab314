package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"wardrobeapi/logging"
	"wardrobeapi/models"
	"wardrobeapi/services"
	"wardrobeapi/stylist"

	"github.com/rs/zerolog/log"
)

const localUserID uint = 1

func loadWardrobe(ctx context.Context, path string, catalogue services.CatalogueStore) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var items []models.ClothingItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("decode wardrobe %s: %w", path, err)
	}
	ids := services.UUIDGenerator{}
	for i := range items {
		items[i].OwnerID = localUserID
		if items[i].ID == "" {
			items[i].ID = ids.NewID()
		}
		if items[i].ColorName == "" {
			items[i].ColorName = items[i].Color
		}
		if err := catalogue.AddItem(ctx, &items[i]); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func printOutfit(w io.Writer, outfit *models.Outfit) {
	fmt.Fprintf(w, "\n%s outfit, match %d%%\n", strings.ToUpper(string(outfit.Occasion)), outfit.MatchScore)
	for _, item := range outfit.Items {
		fmt.Fprintf(w, "  - %-10s %s (%s)\n", item.Type, item.Name, item.ColorName)
	}
	fmt.Fprintf(w, "  %s\n\n", outfit.Explanation)
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p prompter) ask(question string, fallback string) (string, bool) {
	if fallback != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, fallback)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	if !p.in.Scan() {
		return "", false
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return fallback, true
	}
	return answer, true
}

func (p prompter) request(previous stylist.Request) (stylist.Request, bool) {
	var request stylist.Request
	for {
		occasion, ok := p.ask("occasion", string(previous.Occasion))
		if !ok {
			return request, false
		}
		if models.ValidateOccasionRaw(occasion) {
			request.Occasion = models.Occasion(occasion)
			break
		}
		fmt.Fprintf(p.out, "unknown occasion, pick one of %v\n", models.Occasions)
	}
	mood, ok := p.ask("mood", previous.Mood)
	if !ok {
		return request, false
	}
	hint, ok := p.ask("anything specific in mind?", "")
	if !ok {
		return request, false
	}
	request.Mood = mood
	request.Hint = hint
	return request, true
}

func run(ctx context.Context, stores services.Stores, assembler *stylist.Assembler, in io.Reader, out io.Writer) error {
	p := prompter{in: bufio.NewScanner(in), out: out}
	session := stylist.NewSession(assembler, stores.History, localUserID)
	request := stylist.Request{Occasion: models.OccasionCasual, Mood: "relaxed"}

	show := func(outfit *models.Outfit, err error) {
		switch {
		case errors.Is(err, stylist.ErrInsufficientWardrobe):
			fmt.Fprintln(out, "Not enough clothes to build an outfit, add a few more items to your wardrobe file.")
		case err != nil:
			fmt.Fprintf(out, "could not build an outfit: %v\n", err)
		default:
			printOutfit(out, outfit)
		}
	}

	for {
		fmt.Fprintf(out, "[%s] g generate, r re-roll, d dislike, l like, h history, q quit > ", session.State())
		if !p.in.Scan() {
			return p.in.Err()
		}
		wardrobe, err := stores.Catalogue.ListItems(ctx, localUserID)
		if err != nil {
			return err
		}

		switch strings.TrimSpace(p.in.Text()) {
		case "g":
			next, ok := p.request(request)
			if !ok {
				return p.in.Err()
			}
			request = next
			session.Configure(request)
			show(session.Generate(wardrobe))
		case "r", "d":
			if session.State() != stylist.StateShowing {
				fmt.Fprintln(out, "generate an outfit first")
				continue
			}
			show(session.Reroll(wardrobe))
		case "l":
			saved, next, err := session.Like(ctx, wardrobe)
			if errors.Is(err, stylist.ErrNothingToLike) {
				fmt.Fprintln(out, "nothing to like yet")
				continue
			}
			if saved == nil {
				return err
			}
			fmt.Fprintf(out, "saved outfit %s\n", saved.ID)
			show(next, err)
		case "h":
			outfits, err := stores.History.ListOutfits(ctx, localUserID)
			if err != nil {
				return err
			}
			if len(outfits) == 0 {
				fmt.Fprintln(out, "no saved outfits yet")
			}
			for _, outfit := range outfits {
				fmt.Fprintf(out, "%s  %-8s %d%%  %d items\n", outfit.CreatedAt.Format("2006-01-02 15:04"), outfit.Occasion, outfit.MatchScore, len(outfit.Items))
			}
		case "q":
			return nil
		case "":
		default:
			fmt.Fprintln(out, "unknown command")
		}
	}
}

func main() {
	var wardrobePath string
	var seed uint64
	var env string
	flag.StringVar(&wardrobePath, "wardrobe", "wardrobe.json", "JSON file with the clothing items")
	flag.Uint64Var(&seed, "seed", 0, "seed for reproducible outfits (0 picks a random one)")
	flag.StringVar(&env, "env", "local", "log environment")
	flag.Parse()
	logging.Setup(env)

	ctx := context.Background()
	stores := services.NewMemoryStores()
	count, err := loadWardrobe(ctx, wardrobePath, stores.Catalogue)
	if err != nil {
		log.Fatal().Err(err).Str("path", wardrobePath).Msg("failed to load wardrobe")
	}
	log.Info().Int("items", count).Msg("wardrobe loaded")

	var random stylist.RandomSource
	if seed != 0 {
		random = rand.New(rand.NewPCG(seed, seed))
	}
	if err := run(ctx, stores, stylist.NewAssembler(random, nil), os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("stylist stopped")
	}
}
