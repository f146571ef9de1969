package config

// This file loads the allocation engine tuning from environment variables.
// Every knob has a default matching engine.DefaultPolicy, so a bare
// deployment runs the engine unchanged; operators override individual
// weights without touching code.

import (
    "os"
    "strconv"
    "strings"

    "github.com/majidonaisy/seating-algo/internal/engine"
)

// LoadSolverPolicy builds an engine.Policy from environment variables.
// Supported variables:
//   SOLVER_ON_UNASSIGNED        – "fail_fast" (default) or "continue_partial"
//   SOLVER_CAPACITY_WEIGHT      – weight of free capacity in room scoring
//   SOLVER_FRAGMENTATION_PENALTY, SOLVER_FILL_THRESHOLD
//   SOLVER_TAIL_PENALTY, SOLVER_TAIL_THRESHOLD
//   SOLVER_DIVERSITY_BONUS
//   SOLVER_MAX_REBALANCE_ITERS, SOLVER_MAX_IMPROVE_ITERS, SOLVER_PAIR_WINDOW
func LoadSolverPolicy() engine.Policy {
    p := engine.DefaultPolicy
    switch strings.ToLower(os.Getenv("SOLVER_ON_UNASSIGNED")) {
    case "continue_partial":
        p.OnUnassigned = engine.ContinuePartial
    case "fail_fast", "":
        p.OnUnassigned = engine.FailFast
    }
    p.CapacityWeight = envInt("SOLVER_CAPACITY_WEIGHT", p.CapacityWeight)
    p.FragmentationPenalty = envInt("SOLVER_FRAGMENTATION_PENALTY", p.FragmentationPenalty)
    p.FillThreshold = envFloat("SOLVER_FILL_THRESHOLD", p.FillThreshold)
    p.TailPenalty = envInt("SOLVER_TAIL_PENALTY", p.TailPenalty)
    p.TailThreshold = envInt("SOLVER_TAIL_THRESHOLD", p.TailThreshold)
    p.DiversityBonus = envInt("SOLVER_DIVERSITY_BONUS", p.DiversityBonus)
    p.MaxRebalanceIters = envInt("SOLVER_MAX_REBALANCE_ITERS", p.MaxRebalanceIters)
    p.MaxImproveIters = envInt("SOLVER_MAX_IMPROVE_ITERS", p.MaxImproveIters)
    p.PairWindow = envInt("SOLVER_PAIR_WINDOW", p.PairWindow)
    return p
}

func envFloat(k string, d float64) float64 {
    if v := os.Getenv(k); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil {
            return f
        }
    }
    return d
}
