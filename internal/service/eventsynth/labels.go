package eventsynth

import "github.com/KasumiMercury/primind-jetlag/internal/domain"

// durationMin is the fixed event length, or the fallback when ownDuration is
// set and the intervention carries no duration of its own.
type typeInfo struct {
	emoji           string
	label           string
	shortLabel      string
	durationMin     int
	ownDuration     bool
	reminderMinutes int
}

var typeTable = map[domain.InterventionType]typeInfo{
	domain.InterventionWakeTarget: {
		emoji: "⏰", label: "Wake up", shortLabel: "Wake",
		durationMin: 15, reminderMinutes: 0,
	},
	domain.InterventionSleepTarget: {
		emoji: "😴", label: "Bedtime", shortLabel: "Sleep",
		durationMin: 15, reminderMinutes: 30,
	},
	domain.InterventionMelatonin: {
		emoji: "💊", label: "Take melatonin", shortLabel: "Melatonin",
		durationMin: 15, reminderMinutes: defaultReminderMinutes,
	},
	domain.InterventionLightSeek: {
		emoji: "☀️", label: "Seek bright light", shortLabel: "Light",
		durationMin: 30, ownDuration: true, reminderMinutes: defaultReminderMinutes,
	},
	domain.InterventionLightAvoid: {
		emoji: "🕶️", label: "Avoid bright light", shortLabel: "Avoid light",
		durationMin: 60, ownDuration: true, reminderMinutes: defaultReminderMinutes,
	},
	domain.InterventionCaffeineOK: {
		emoji: "☕", label: "Caffeine OK", shortLabel: "Caffeine",
		durationMin: 15, reminderMinutes: defaultReminderMinutes,
	},
	domain.InterventionCaffeineCutoff: {
		emoji: "🚫", label: "Caffeine cutoff", shortLabel: "No caffeine",
		durationMin: 15, reminderMinutes: 15,
	},
	domain.InterventionExercise: {
		emoji: "🏃", label: "Exercise", shortLabel: "Exercise",
		durationMin: 45, reminderMinutes: 15,
	},
	domain.InterventionNapWindow: {
		emoji: "💤", label: "Nap window", shortLabel: "Nap",
		durationMin: 30, ownDuration: true, reminderMinutes: defaultReminderMinutes,
	},
}

func infoFor(t domain.InterventionType) typeInfo {
	if info, ok := typeTable[t]; ok {
		return info
	}
	return typeInfo{emoji: "📌", label: string(t), shortLabel: string(t), durationMin: MinDurationMinutes, reminderMinutes: defaultReminderMinutes}
}
