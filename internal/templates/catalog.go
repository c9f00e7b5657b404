package templates

import "github.com/julianstephens/brightwell/internal/models"

type th = models.TemplateHabit

var catalog = []models.HabitTemplate{
	{
		ID: "morning_routine", Name: "Morning Routine", Icon: "🌅",
		Description: "Start your day right with healthy morning habits",
		Habits: []th{
			{"Wake up early", "Rise before 7 AM"},
			{"Drink water", "Hydrate first thing"},
			{"Meditate", "10 minutes of mindfulness"},
			{"Exercise", "Morning workout or yoga"},
			{"Healthy breakfast", "Nutritious meal"},
		},
	},
	{
		ID: "fitness_goals", Name: "Fitness Goals", Icon: "💪",
		Description: "Build a strong and healthy body",
		Habits: []th{
			{"Workout", "30 minutes of exercise"},
			{"Drink 8 glasses of water", "Stay hydrated"},
			{"Track calories", "Monitor food intake"},
			{"Stretch", "Flexibility exercises"},
			{"Get 8 hours sleep", "Rest and recovery"},
		},
	},
	{
		ID: "mental_wellness", Name: "Mental Wellness", Icon: "🧘",
		Description: "Take care of your mental health",
		Habits: []th{
			{"Meditate", "Daily mindfulness practice"},
			{"Journal", "Write thoughts and feelings"},
			{"Gratitude practice", "List 3 things you're grateful for"},
			{"Deep breathing", "5 minutes of breathing exercises"},
			{"Digital detox", "1 hour without screens"},
		},
	},
	{
		ID: "productivity", Name: "Productivity Boost", Icon: "🚀",
		Description: "Maximize your daily productivity",
		Habits: []th{
			{"Plan your day", "Morning planning session"},
			{"Focus time", "2 hours of deep work"},
			{"Take breaks", "Pomodoro technique"},
			{"Review progress", "Evening reflection"},
			{"Prepare for tomorrow", "Set up next day"},
		},
	},
	{
		ID: "healthy_lifestyle", Name: "Healthy Lifestyle", Icon: "🌱",
		Description: "Comprehensive wellness habits",
		Habits: []th{
			{"Eat vegetables", "5 servings per day"},
			{"Walk 10,000 steps", "Daily movement"},
			{"Avoid junk food", "Healthy eating"},
			{"Take vitamins", "Daily supplements"},
			{"Sleep by 10 PM", "Consistent sleep schedule"},
		},
	},
	{
		ID: "learning", Name: "Continuous Learning", Icon: "📚",
		Description: "Develop new skills and knowledge",
		Habits: []th{
			{"Read 30 minutes", "Books or articles"},
			{"Learn new skill", "Practice daily"},
			{"Watch educational content", "TED talks or courses"},
			{"Practice language", "Duolingo or similar"},
			{"Take notes", "Document learnings"},
		},
	},
	{
		ID: "social_connection", Name: "Social Connection", Icon: "👥",
		Description: "Build and maintain relationships",
		Habits: []th{
			{"Call a friend", "Stay connected"},
			{"Family time", "Quality time with loved ones"},
			{"Express gratitude", "Thank someone"},
			{"Help others", "Random act of kindness"},
			{"Social activity", "Meet people"},
		},
	},
	{
		ID: "evening_routine", Name: "Evening Routine", Icon: "🌙",
		Description: "Wind down and prepare for restful sleep",
		Habits: []th{
			{"No screens 1 hour before bed", "Digital sunset"},
			{"Skincare routine", "Self-care"},
			{"Read before bed", "Relaxing activity"},
			{"Plan tomorrow", "Prepare for next day"},
			{"Lights out by 10 PM", "Consistent sleep time"},
		},
	},
}
