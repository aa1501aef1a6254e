package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/pitchside/internal/game"
)

func money(n int) string {
	return "$" + humanize.Comma(int64(n))
}

func offerTerminal(s game.OfferStatus) bool {
	return s != game.OfferPending
}

// closeOffer marks an offer terminal, stamping when it closed so the weekly
// sweep can retire it after the retention window.
func closeOffer(o *game.TransferOffer, status game.OfferStatus, season, week int) {
	o.Status = status
	o.ClosedSeason = season
	o.ClosedWeek = week
}

// sweepOffers expires overdue pending offers and drops terminal offers once
// their retention window has passed.
func sweepOffers(state *game.GameState) []string {
	var logs []string
	season, week := state.League.CurrentSeason, state.League.CurrentWeek

	kept := state.Offers[:0]
	for _, o := range state.Offers {
		if o.Status == game.OfferPending &&
			(season > o.ExpiresSeason || (season == o.ExpiresSeason && week >= o.ExpiresWeek)) {
			closeOffer(o, game.OfferExpired, season, week)
			if p := state.FindPlayer(o.PlayerID); p != nil {
				logs = append(logs, fmt.Sprintf("Offer from %s for %s has expired.", o.FromTeamName, p.Name))
			}
		}
		if offerTerminal(o.Status) {
			age := (season-o.ClosedSeason)*game.WeeksPerSeason + (week - o.ClosedWeek)
			if age > game.ClosedOfferRetentionWeeks {
				continue
			}
		}
		kept = append(kept, o)
	}
	state.Offers = kept
	return logs
}

// generateOffers rolls for new club interest in the tracked player. Only
// runs when a window is open and the player is fit.
func (e *Engine) generateOffers(state *game.GameState) []string {
	if !state.Window.Open() {
		return nil
	}
	player := state.UserPlayer()
	if player == nil || player.Injury != nil {
		return nil
	}
	if e.rng.Float64() <= 0.7 {
		return nil
	}

	currentTeam := state.FindTeam(player.TeamID)
	currentRep := 30
	if currentTeam != nil {
		currentRep = currentTeam.Reputation
	}
	season, week := state.League.CurrentSeason, state.League.CurrentWeek

	var logs []string
	for _, suitor := range state.Teams {
		if suitor.ID == player.TeamID {
			continue
		}
		alreadyPending := false
		for _, o := range state.Offers {
			if o.FromTeamID == suitor.ID && o.PlayerID == player.ID && o.Status == game.OfferPending {
				alreadyPending = true
				break
			}
		}
		if alreadyPending {
			continue
		}

		repFactor := float64(player.Attributes.Reputation) / 100
		valueFactor := float64(player.Attributes.Value) / 100000
		teamRepFactor := float64(suitor.Reputation) / float64(currentRep)
		contractFactor := 1.0
		if player.TeamID == "" || player.ContractExpirySeason-season <= 1 {
			contractFactor = 1.5
		}
		listFactor := 1.0
		if player.TransferListed || player.TransferRequest == game.RequestApprovedByClub {
			listFactor = 1.3
		}

		interest := repFactor * valueFactor * teamRepFactor * contractFactor * listFactor
		if currentTeam == nil || suitor.Division <= currentTeam.Division {
			interest *= 1.2
		} else {
			interest *= 0.8
		}

		if interest <= 0.2+e.rng.Float64()*0.3 {
			continue
		}

		fee := 0
		if player.TeamID != "" && player.ContractExpirySeason > season {
			yearsLeft := float64(player.ContractExpirySeason - season)
			fee = int(float64(player.Attributes.Value) * (0.5 + e.rng.Float64()) * (yearsLeft / 3))
			fee = max(500, fee)
		}
		if suitor.Budget < fee {
			continue
		}

		wage := int(float64(game.DivisionBaseWage[suitor.Division]) * (0.9 + e.rng.Float64()*0.4) * (repFactor + teamRepFactor) / 2)
		years := e.randRange(1, 3)
		bonus := int(float64(wage) * float64(years) * (0.05 + e.rng.Float64()*0.1))

		state.Offers = append(state.Offers, &game.TransferOffer{
			ID:            uuid.NewString(),
			FromTeamID:    suitor.ID,
			FromTeamName:  suitor.Name,
			FromDivision:  suitor.Division,
			PlayerID:      player.ID,
			Fee:           fee,
			Wage:          wage,
			ContractYears: years,
			SigningBonus:  bonus,
			Status:        game.OfferPending,
			Season:        season,
			Week:          week,
			ExpiresSeason: season,
			ExpiresWeek:   week + game.OfferExpiryWeeks,
		})
		logs = append(logs, fmt.Sprintf("Transfer Offer: %s have made an offer for %s.", suitor.Name, player.Name))
	}
	return logs
}

// decideTransferRequest is the club's weekly verdict on an open transfer
// request. Approval odds improve with the manager relationship.
func (e *Engine) decideTransferRequest(state *game.GameState) []string {
	player := state.UserPlayer()
	if player == nil || player.TeamID == "" || player.Injury != nil {
		return nil
	}
	if player.TransferRequest != game.RequestedByPlayer {
		return nil
	}
	club := state.FindTeam(player.TeamID)
	if club == nil {
		return nil
	}

	approvalChance := 0.4 + float64(player.ManagerRelationship)/250
	if e.rng.Float64() < approvalChance {
		player.TransferRequest = game.RequestApprovedByClub
		player.TransferListed = true
		return []string{fmt.Sprintf("%s's transfer request has been APPROVED by %s. They are now transfer listed.", player.Name, club.Name)}
	}
	player.TransferRequest = game.RequestRejectedByClub
	player.Attributes.Morale = max(0, player.Attributes.Morale-10)
	player.ManagerRelationship = max(0, player.ManagerRelationship-15)
	return []string{fmt.Sprintf("%s's transfer request has been REJECTED by %s.", player.Name, club.Name)}
}

// RequestTransfer files a transfer request with the current club. The club
// answers on a later week's advance.
func (e *Engine) RequestTransfer(state *game.GameState) *game.GameState {
	next := state.Clone()
	player := next.UserPlayer()
	if player == nil {
		return next
	}
	switch {
	case player.TeamID == "":
		next.AppendLog("Cannot request transfer: You are currently not signed with a club.")
	case player.Injury != nil:
		next.AppendLog("Cannot request transfer while injured.")
	case !next.Window.Open():
		next.AppendLog("Cannot request transfer while the transfer window is closed.")
	case player.TransferRequest != game.RequestNone:
		next.AppendLog(fmt.Sprintf("%s has already submitted a transfer request or the club has responded.", player.Name))
	default:
		player.TransferRequest = game.RequestedByPlayer
		club := next.FindTeam(player.TeamID)
		clubName := "their club"
		if club != nil {
			clubName = club.Name
		}
		next.AppendLog(fmt.Sprintf("%s has requested a transfer from %s.", player.Name, clubName))
	}
	return next
}

// RespondToOffer accepts or rejects a pending transfer offer. Acceptance
// re-validates the move and either completes the whole transfer or
// withdraws the offer; nothing is left half-applied.
func (e *Engine) RespondToOffer(state *game.GameState, offerID string, accept bool) *game.GameState {
	next := state.Clone()
	season, week := next.League.CurrentSeason, next.League.CurrentWeek

	var offer *game.TransferOffer
	for _, o := range next.Offers {
		if o.ID == offerID {
			offer = o
			break
		}
	}
	if offer == nil || offer.Status != game.OfferPending {
		return next
	}
	player := next.FindPlayer(offer.PlayerID)
	if player == nil {
		return next
	}

	if !accept {
		closeOffer(offer, game.OfferRejected, season, week)
		player.Attributes.Morale = max(0, player.Attributes.Morale-5)
		player.ManagerRelationship = max(0, player.ManagerRelationship-5)
		next.AppendLog(fmt.Sprintf("%s has rejected the offer from %s.", player.Name, offer.FromTeamName))
		return next
	}

	if player.Injury != nil {
		next.AppendLog("Cannot accept transfer offer: You are currently injured. Clubs are hesitant to sign injured players.")
		return next
	}

	newTeam := next.FindTeam(offer.FromTeamID)
	if newTeam == nil {
		closeOffer(offer, game.OfferWithdrawn, season, week)
		next.AppendLog(fmt.Sprintf("Transfer failed: Offering team %s not found.", offer.FromTeamName))
		return next
	}
	totalCost := offer.Fee + offer.SigningBonus
	if newTeam.Budget < totalCost {
		closeOffer(offer, game.OfferWithdrawn, season, week)
		next.AppendLog(fmt.Sprintf("Transfer failed: %s cannot afford the total cost of %s. Their budget is %s.",
			newTeam.Name, money(totalCost), money(newTeam.Budget)))
		return next
	}
	if len(newTeam.Players) >= game.MaxPlayersPerTeam {
		closeOffer(offer, game.OfferWithdrawn, season, week)
		next.AppendLog(fmt.Sprintf("Transfer failed: %s has a full squad (%d/%d).",
			newTeam.Name, len(newTeam.Players), game.MaxPlayersPerTeam))
		return next
	}

	oldTeam := next.FindTeam(player.TeamID)
	previousName := "Free Agency"
	if player.TeamID == "" {
		next.RemoveFreeAgent(player.ID)
	}
	if oldTeam != nil {
		previousName = oldTeam.Name
		if player.KitNumber != 0 {
			oldTeam.ReleaseKit(player.KitNumber)
		}
		oldTeam.RemovePlayer(player.ID)
		oldTeam.Budget += offer.Fee
		oldTeam.Chemistry = game.TeamChemistry(oldTeam)
	}

	player.TeamID = newTeam.ID
	player.Wage = offer.Wage
	player.ContractExpirySeason = season + offer.ContractYears
	player.Attributes.Value = int(float64(player.Attributes.Value)*1.05 + float64(offer.Fee)*0.05 + float64(offer.SigningBonus)*0.1)
	player.Attributes.Morale = min(game.MaxHundredScale, player.Attributes.Morale+20)
	player.TransferRequest = game.RequestNone
	player.TransferListed = false
	player.ManagerRelationship = game.InitialManagerRelations
	player.KitNumber = 0
	game.AssignKit(e.rng, player, newTeam, player.PreferredKit)

	if n := len(player.ClubHistory); n > 0 && player.ClubHistory[n-1].LeftWeek == 0 {
		player.ClubHistory[n-1].LeftWeek = week
	}
	player.ClubHistory = append(player.ClubHistory, game.ClubHistoryEntry{
		TeamName:    newTeam.Name,
		Season:      season,
		JoinedWeek:  week,
		TransferFee: offer.Fee,
	})

	newTeam.Players = append(newTeam.Players, player)
	newTeam.Budget -= totalCost
	newTeam.Chemistry = game.TeamChemistry(newTeam)

	closeOffer(offer, game.OfferAccepted, season, week)
	for _, o := range next.Offers {
		if o.PlayerID == player.ID && o.ID != offer.ID && o.Status == game.OfferPending {
			closeOffer(o, game.OfferWithdrawn, season, week)
		}
	}

	e.metrics.IncTransfers()
	next.AppendLog(fmt.Sprintf("%s has accepted the offer from %s! Fee: %s, Wage: %s/wk. Moved from %s.",
		player.Name, newTeam.Name, money(offer.Fee), money(offer.Wage), previousName))
	return next
}
