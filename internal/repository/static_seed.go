package repository

import "github.com/noah-isme/campus-credit-api/internal/models"

var seedActivities = []models.Activity{
	{ID: 1, Title: "校园歌手大赛", Category: "文艺活动", StartDate: "2023-10-15", EndDate: "2023-10-20", Status: models.ActivityCompleted, Participants: 328, Credits: 2.0},
	{ID: 2, Title: "志愿者服务日", Category: "志愿服务", StartDate: "2023-10-25", EndDate: "2023-10-25", Status: models.ActivityActive, Participants: 156, Credits: 1.5},
	{ID: 3, Title: "学术研讨会", Category: "学术活动", StartDate: "2023-11-05", EndDate: "2023-11-06", Status: models.ActivityUpcoming, Participants: 0, Credits: 2.0},
	{ID: 4, Title: "篮球友谊赛", Category: "体育活动", StartDate: "2023-11-10", EndDate: "2023-11-12", Status: models.ActivityUpcoming, Participants: 0, Credits: 1.0},
	{ID: 5, Title: "创新创业大赛", Category: "竞赛活动", StartDate: "2023-10-01", EndDate: "2023-10-30", Status: models.ActivityActive, Participants: 87, Credits: 3.0},
}

var seedActivityCategories = []string{"文艺活动", "志愿服务", "学术活动", "体育活动", "竞赛活动"}

var seedStudentCredits = []models.StudentCredit{
	{ID: 1, Name: "张三", StudentID: "2023001", TotalCredits: 24.5, RequiredCredits: 20, Status: models.CreditCompleted},
	{ID: 2, Name: "李四", StudentID: "2023002", TotalCredits: 18.5, RequiredCredits: 20, Status: models.CreditWarning},
	{ID: 3, Name: "王五", StudentID: "2023003", TotalCredits: 21.0, RequiredCredits: 20, Status: models.CreditCompleted},
	{ID: 4, Name: "赵六", StudentID: "2023004", TotalCredits: 15.0, RequiredCredits: 20, Status: models.CreditDanger},
	{ID: 5, Name: "孙七", StudentID: "2023005", TotalCredits: 19.5, RequiredCredits: 20, Status: models.CreditWarning},
	{ID: 6, Name: "周八", StudentID: "2023006", TotalCredits: 22.5, RequiredCredits: 20, Status: models.CreditCompleted},
}

// No report row belongs to 其他, so selecting that slice shows the empty state.
var seedCreditDetails = []models.CreditDetailRow{
	{ID: 1, Category: "社会实践", Name: "暑期三下乡", TotalCredits: 1280, StudentCount: 64, AverageCredits: 20.0},
	{ID: 2, Category: "志愿服务", Name: "志愿者服务日", TotalCredits: 780, StudentCount: 156, AverageCredits: 5.0},
	{ID: 3, Category: "文体活动", Name: "校园歌手大赛", TotalCredits: 656, StudentCount: 328, AverageCredits: 2.0},
	{ID: 4, Category: "社会实践", Name: "社区调研", TotalCredits: 540, StudentCount: 45, AverageCredits: 12.0},
	{ID: 5, Category: "学术科研", Name: "学术论坛", TotalCredits: 374, StudentCount: 187, AverageCredits: 2.0},
	{ID: 6, Category: "志愿服务", Name: "敬老院探访", TotalCredits: 360, StudentCount: 72, AverageCredits: 5.0},
	{ID: 7, Category: "文体活动", Name: "篮球联赛", TotalCredits: 328, StudentCount: 164, AverageCredits: 2.0},
	{ID: 8, Category: "学术科研", Name: "创新创业大赛", TotalCredits: 261, StudentCount: 87, AverageCredits: 3.0},
}

var seedDashboardDistribution = []models.ChartPoint{
	{Name: "社会实践", Value: 30},
	{Name: "志愿服务", Value: 25},
	{Name: "文体活动", Value: 20},
	{Name: "学术科研", Value: 15},
	{Name: "其他", Value: 10},
}

var seedCreditsDistribution = []models.ChartPoint{
	{Name: "志愿服务", Value: 35},
	{Name: "学术活动", Value: 25},
	{Name: "文体活动", Value: 20},
	{Name: "社会实践", Value: 15},
	{Name: "其他", Value: 5},
}

var seedUsers = []models.User{
	{ID: 1, Name: "张主任", Username: "zhangzhuran", Email: "zhang@example.com", Role: models.RoleAdmin, Department: "校团委", LastActive: "2023-10-15 14:30"},
	{ID: 2, Name: "王老师", Username: "wanglaoshi", Email: "wang@example.com", Role: models.RoleManager, Department: "计算机学院", LastActive: "2023-10-14 09:45"},
	{ID: 3, Name: "李老师", Username: "lilaoshi", Email: "li@example.com", Role: models.RoleManager, Department: "机械工程学院", LastActive: "2023-10-13 16:20"},
	{ID: 4, Name: "赵助理", Username: "zhaozl", Email: "zhao@example.com", Role: models.RoleAssistant, Department: "校团委", LastActive: "2023-10-12 11:15"},
	{ID: 5, Name: "刘班长", Username: "liuban", Email: "liu@example.com", Role: models.RoleClass, Department: "计算机1班", LastActive: "2023-10-11 15:30"},
}

var seedDepartments = []string{"校团委", "计算机学院", "机械工程学院", "计算机1班"}

var seedNotifications = []models.Notification{
	{ID: 1, Title: "新活动审核请求", Message: "计算机学院申请发布\"程序设计大赛\"活动，请及时审核。", Type: models.NotificationAlert, Time: "5分钟前", Read: false},
	{ID: 2, Title: "积分发放完成", Message: "\"校园歌手大赛\"活动积分已成功发放给328名参与学生。", Type: models.NotificationSuccess, Time: "1小时前", Read: false},
	{ID: 3, Title: "系统更新通知", Message: "系统将于今晚22:00-23:00进行维护更新，请提前保存工作。", Type: models.NotificationInfo, Time: "3小时前", Read: true},
	{ID: 4, Title: "学生积分申诉", Message: "学生张三(2023001)对\"志愿者服务日\"活动积分提出申诉。", Type: models.NotificationAlert, Time: "5小时前", Read: true},
	{ID: 5, Title: "活动报名截止提醒", Message: "\"篮球友谊赛\"活动报名将于明天12:00截止。", Type: models.NotificationCalendar, Time: "昨天", Read: true},
	{ID: 6, Title: "未达标学生预警", Message: "有12名大四学生积分未达标，请注意关注。", Type: models.NotificationAlert, Time: "2天前", Read: true},
}

var seedActivityTrend = []models.ChartPoint{
	{Name: "周一", Value: 24},
	{Name: "周二", Value: 13},
	{Name: "周三", Value: 29},
	{Name: "周四", Value: 34},
	{Name: "周五", Value: 40},
	{Name: "周六", Value: 48},
	{Name: "周日", Value: 35},
}

var seedTopActivities = []models.ActivityRanking{
	{ID: 1, Name: "校园歌手大赛", Participants: 328, Completion: 92},
	{ID: 2, Name: "志愿者服务日", Participants: 256, Completion: 88},
	{ID: 3, Name: "学术论坛", Participants: 187, Completion: 79},
	{ID: 4, Name: "篮球联赛", Participants: 164, Completion: 95},
}

var seedStatCards = []models.StatCard{
	{Key: "activities", Title: "活动总数", Value: "134", TrendValue: 7.2, TrendPositive: true, Description: "较上月增长7.2%"},
	{Key: "participants", Title: "参与学生", Value: "4,563", TrendValue: 9.3, TrendPositive: true, Description: "较上月增长9.3%"},
	{Key: "credits_issued", Title: "累计发放积分", Value: "23,721", TrendValue: 5.8, TrendPositive: true, Description: "较上月增长5.8%"},
	{Key: "compliance", Title: "学分达标率", Value: "84%", TrendValue: 2.4, TrendPositive: true, Description: "较上月提高2.4%"},
}

var seedTodoItems = []models.TodoItem{
	{Key: "pending_review", Title: "待审核活动", Count: 5, Level: models.TodoWarning},
	{Key: "pending_credits", Title: "待发放积分", Count: 12, Level: models.TodoInfo},
	{Key: "low_participation", Title: "低参与率活动", Count: 3, Level: models.TodoDanger},
}
